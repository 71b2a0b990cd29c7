package logger

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
)

// Global logger - accessible from anywhere
var Debug = log.New(io.Discard, "", log.LstdFlags)

// StatusChan carries screen messages to the TUI when it is running.
// When nil, Screen prints straight to the console.
var StatusChan chan string

// Init sets up the logger - call this from main
func Init(filename string) error {
	f, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	Debug = log.New(f, "", log.LstdFlags|log.Lshortfile)
	Debug.Println("Logger initialized")
	return nil
}

// Screen shows a status line to the user without writing it to the debug log.
func Screen(text string, c *color.Color) {
	if StatusChan != nil {
		select {
		case StatusChan <- text:
		default:
		}
		return
	}

	if c != nil {
		c.Println(text)
	} else {
		fmt.Println(text)
	}
}
