// Package modules holds the fixed set of provisioning units: the
// package manager, the shell framework, the prompt theme, the terminal
// multiplexer, and fonts. Each unit knows how to detect its current
// state and how to bring the system to the target state; all file
// mutations go through the run's patcher and backup session.
package modules
