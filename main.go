/*
Copyright 2025 f1stats authors
*/
package main

import "github.com/f1stats/f1stats-service/cmd"

func main() {
	cmd.Execute()
}
