package main

import "github.com/mselser95/cowtrader/cmd"

func main() {
	cmd.Execute()
}
