// Package cli provides the interactive expense-sharing command-line client.
//
// It wires configuration, the local credential store, the API services, the
// session controller and the router into a REPL. Every command acts on the
// current screen; the screen is whatever the router resolved last, so a
// signed-out user asking for a protected screen lands on the login screen
// and is returned to the original screen after verifying the code.
//
// A protected request answered with 401 signs the session out and sends the
// user back to the login screen with the current path recorded.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
