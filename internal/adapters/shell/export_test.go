package shell

// ResolveEnvironment exposes resolveEnvironment for testing.
var ResolveEnvironment = resolveEnvironment

// LookPath exposes lookPath for testing.
var LookPath = lookPath
