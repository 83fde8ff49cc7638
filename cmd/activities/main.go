/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/mergington/activities/cmd/activities/cmd"

func main() {
	cmd.Execute()
}
