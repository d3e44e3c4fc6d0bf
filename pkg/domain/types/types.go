package types

// Version is the application version
const Version = "0.1.0"

// ServiceName is used in logs and user facing output
const ServiceName = "tubetap"
