package shell

import "io"

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "load [path] - load a word list; defaults to --dictionary-path\n")
	io.WriteString(w, "hints <word:CODE[,word:CODE...]> - apply hints, e.g. grant:GGYRR\n")
	io.WriteString(w, "    G = letter in the right spot, Y = right letter wrong spot, R = absent\n")
	io.WriteString(w, "solve - find the guess minimizing expected further guesses\n")
	io.WriteString(w, "autoplay - play every word in the list as the secret and report stats\n")
	io.WriteString(w, "set threads <n> - number of search threads\n")
	io.WriteString(w, "set memo <on|off> - toggle memoization of candidate-set results\n")
	io.WriteString(w, "status - show loaded words, hints, and options\n")
	io.WriteString(w, "exit - leave the shell\n")
}
