package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"magpie/data"
	"magpie/services"
)

type CliResponseHandler struct {
	Repository data.TranscriptRepository
	Mode       string
	CopyCode   bool
}

// FinalText stores the finished exchange and renders the answer to the
// terminal. A failed store is reported and otherwise ignored, the user still
// gets their answer.
func (cli CliResponseHandler) FinalText(question string, response string, strategy string) {
	if cli.Repository != nil {
		_, err := cli.Repository.InsertExchange(data.Exchange{
			Mode:     cli.Mode,
			Question: question,
			Answer:   response,
			Strategy: strategy,
		})
		if err != nil {
			fmt.Printf("Error while trying to save history: %s\n", err)
		}
	}

	if cli.CopyCode {
		code := services.ExtractCodeBlocks(response)
		if len(code) > 0 {
			if err := clipboard.WriteAll(strings.Join(code, "\n\n")); err != nil {
				fmt.Printf("Error copying to clipboard: %v\n", err)
			}
		}
	}

	out, err := glamour.Render(response, glamourStyle())
	if err != nil {
		fmt.Printf("\n🤖: %s\n", response)
		return
	}

	fmt.Print("\n🤖:")
	fmt.Println(out)
}

func glamourStyle() string {
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
