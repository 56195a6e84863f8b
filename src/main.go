package main

import (
	"git.handmade.network/hmn/pngview/src/viewer"
)

func main() {
	viewer.ViewerCommand.Execute()
}
