// Package main provides the textdiff CLI.
//
// textdiff adapts instructional texts to a target reading grade level with a
// chat-completion model and scores them with the Flesch Reading Ease formula.
//
// Usage:
//
//	textdiff serve
//	textdiff adapt --grade 4th lesson.txt
//	textdiff score lesson.txt
//
// See --help for all available options.
package main

func main() {
	Execute()
}
