package main

import "github.com/ValentinKolb/storagemap/cmd"

func main() {
	cmd.Execute()
}
