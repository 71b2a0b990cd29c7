package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"magpie/data"
	"magpie/models"
	"magpie/services"
)

const (
	dualSaveFile   = "dual_model_conversation.json"
	singleSaveFile = "conversation_log.json"
)

// trapInterrupt makes Ctrl-C a normal way out of the loop.
func trapInterrupt() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	go func() {
		<-sigs
		fmt.Println("\n🤖 Goodbye!")
		os.Exit(0)
	}()
}

// answerQuestion runs one question's processing. Whatever blows up inside is
// caught here so the loop itself never dies on a bad question.
func answerQuestion(process func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("🤖 Sorry, I encountered an error: %v\n", r)
			fmt.Println("🤖 Please try again.")
		}
	}()
	process()
}

func readQuestion(reader *bufio.Reader) (string, bool) {
	fmt.Print("\nYou: ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func saveSession(session *data.Session, filename string) {
	if err := session.Save(filename); err != nil {
		fmt.Printf("❌ Could not save conversation: %v\n", err)
		return
	}
	fmt.Printf("💾 Conversation saved to %s\n", filename)
}

func runDual(workflow *services.Workflow, session *data.Session, handler CliResponseHandler) {
	fmt.Println("🤖 Dual-Model Real-Time AI Assistant is ready!")
	fmt.Println("🟡 Qwen3-VL: Vision, multimodal, Chinese language")
	fmt.Println("🔵 GPT-OSS: General reasoning, complex analysis")
	fmt.Println("🔄 Smart model selection and combination")
	fmt.Println("📋 Commands: 'exit', 'save', 'clear', 'models'")
	fmt.Println("\n🤖 Hello! I can use both models to give you the best answers. What would you like to know?")

	reader := bufio.NewReader(os.Stdin)
	for {
		question, ok := readQuestion(reader)
		if !ok {
			fmt.Println("\n🤖 Goodbye!")
			return
		}

		switch strings.ToLower(question) {
		case "exit", "quit", "bye", "goodbye":
			fmt.Println("🤖 Goodbye! Thanks for using the dual-model assistant!")
			return
		case "save":
			saveSession(session, dualSaveFile)
			continue
		case "clear", "clear history":
			session.Clear()
			fmt.Println("🤖 Conversation history cleared!")
			continue
		case "models":
			fmt.Printf("🟡 Qwen3-VL: %s - Vision, multimodal tasks\n", workflow.Qwen.Name())
			fmt.Printf("🔵 GPT-OSS: %s - General reasoning, analysis\n", workflow.GPT.Name())
			continue
		case "":
			continue
		}

		answerQuestion(func() {
			response, strategy := workflow.ProcessQuestion(question)
			session.Record(question, response)
			handler.FinalText(question, response, strategy.String())
		})
	}
}

func runSingle(workflow *services.Workflow, model models.Model, session *data.Session, handler CliResponseHandler) {
	fmt.Println("🤖 Real-Time AI Assistant is ready!")
	fmt.Println("🤖 Features: Web search, conversation memory, source citations")
	fmt.Println("🤖 Commands: 'exit', 'save', 'clear history'")
	fmt.Println("🤖 Hello! What would you like to know?")

	reader := bufio.NewReader(os.Stdin)
	for {
		question, ok := readQuestion(reader)
		if !ok {
			fmt.Println("\n🤖 Goodbye!")
			return
		}

		switch strings.ToLower(question) {
		case "exit", "quit", "bye", "goodbye":
			fmt.Println("🤖 Goodbye! Thanks for chatting!")
			return
		case "save":
			saveSession(session, singleSaveFile)
			continue
		case "clear", "clear history":
			session.Clear()
			fmt.Println("🤖 Conversation history cleared!")
			continue
		case "":
			continue
		}

		answerQuestion(func() {
			response := workflow.AnswerWithHistory(question, session, model)
			session.Record(question, response)
			handler.FinalText(question, response, "")
		})
	}
}

func runCompare(workflow *services.Workflow) {
	fmt.Println("🤖 Dual-Model Assistant Ready!")
	fmt.Println("🤖 I'll show you responses from both models for comparison.")
	fmt.Println("🤖 Hello! What would you like to know?")

	reader := bufio.NewReader(os.Stdin)
	for {
		question, ok := readQuestion(reader)
		if !ok {
			fmt.Println("\n🤖 Goodbye!")
			return
		}

		switch strings.ToLower(question) {
		case "exit", "quit", "bye", "goodbye":
			fmt.Println("🤖 Goodbye!")
			return
		case "":
			continue
		}

		answerQuestion(func() {
			qwenResponse, gptResponse := workflow.CompareResponses(question)

			fmt.Println("\n" + strings.Repeat("=", 80))
			fmt.Println("🟡 QWEN3-VL RESPONSE:")
			fmt.Println(strings.Repeat("-", 40))
			fmt.Println(qwenResponse)
			fmt.Println("\n" + strings.Repeat("=", 80))
			fmt.Println("🔵 GPT-OSS RESPONSE:")
			fmt.Println(strings.Repeat("-", 40))
			fmt.Println(gptResponse)
			fmt.Println(strings.Repeat("=", 80))
		})
	}
}
