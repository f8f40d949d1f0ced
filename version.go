package dialplan

// Version is the released application version.
const Version = "1.0.0"
