// Package common contains the pieces shared by the library packages and the CLI:
// the logger factory plugged into dragonboat's logger registry and the
// configuration struct describing which storage backend to use.
package common
