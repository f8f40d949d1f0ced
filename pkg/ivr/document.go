package ivr

// Instruction is a single telephony verb inside a voice-response document.
// The concrete types below form a closed set; the serializer switches over
// them when rendering the platform wire format.
type Instruction interface {
	isInstruction()
}

// Say speaks a text message to the caller.
type Say struct {
	Text string
}

// Play plays an audio sample from a URL.
type Play struct {
	URL string
}

// Pause waits silently for a number of seconds.
type Pause struct {
	Seconds int
}

// Gather collects keypad digits while playing its inner instructions.
// An empty Action means the platform submits digits back to the URL the
// document was served from.
type Gather struct {
	NumDigits int
	Action    string
	Inner     []Instruction
}

// Dial forwards the call to a phone number. Action is the status-callback
// URL the platform posts the call disposition to once the dial finishes.
type Dial struct {
	Number string
	Action string
	Method string
}

// Record captures a voice recording. Action receives the completion
// callback, StatusCallback the separate recording-status callback.
type Record struct {
	Action               string
	TimeoutSeconds       int
	MaxLengthSeconds     int
	StatusCallback       string
	StatusCallbackMethod string
}

// Redirect hands control to another document URL.
type Redirect struct {
	URL string
}

// Hangup terminates the call.
type Hangup struct{}

func (Say) isInstruction()      {}
func (Play) isInstruction()     {}
func (Pause) isInstruction()    {}
func (Gather) isInstruction()   {}
func (Dial) isInstruction()     {}
func (Record) isInstruction()   {}
func (Redirect) isInstruction() {}
func (Hangup) isInstruction()   {}

// Document is the ordered instruction sequence returned for one request.
type Document struct {
	Instructions []Instruction
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// Append adds an instruction and returns the document for chaining.
func (d *Document) Append(in Instruction) *Document {
	d.Instructions = append(d.Instructions, in)
	return d
}

// Say appends a spoken message.
func (d *Document) Say(text string) *Document {
	return d.Append(Say{Text: text})
}

// Play appends an audio sample.
func (d *Document) Play(url string) *Document {
	return d.Append(Play{URL: url})
}

// Pause appends a silent wait.
func (d *Document) Pause(seconds int) *Document {
	return d.Append(Pause{Seconds: seconds})
}

// Redirect appends a redirect to another document URL.
func (d *Document) Redirect(url string) *Document {
	return d.Append(Redirect{URL: url})
}

// Hangup appends a call termination.
func (d *Document) Hangup() *Document {
	return d.Append(Hangup{})
}

// Last returns the final instruction, or nil for an empty document.
func (d *Document) Last() Instruction {
	if len(d.Instructions) == 0 {
		return nil
	}
	return d.Instructions[len(d.Instructions)-1]
}
