// Package cmd provides helpers for executing shell commands with proper error handling.
//
// This package wraps [os/exec.Cmd] to capture stderr and include it in error
// messages, making command failures more informative for users.
//
// # Usage
//
//	output, err := cmd.OutputContext(ctx, "", "pj", "status")
//	if err != nil {
//	    // err contains stderr output if available
//	}
//
// # Design Notes
//
// chprompt shells out to the pj CLI rather than linking a library.
// This keeps the tool decoupled from the VCS version installed by the user
// and matches what the user sees when running pj by hand.
package cmd
