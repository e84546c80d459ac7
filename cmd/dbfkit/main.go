/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/dbfkit/dbfkit/cmd/dbfkit/cmd"

func main() {
	cmd.Execute()
}
