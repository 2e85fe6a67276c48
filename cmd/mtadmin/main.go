package main

import "mtadmin/cmd/mtadmin/cmd"

func main() {
	cmd.Execute()
}
