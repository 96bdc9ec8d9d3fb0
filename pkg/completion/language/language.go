// Package language carries per-language completion context: the syntactic
// patterns a language opens declarations with and the instruction line used
// when prompting the model.
package language

import "strings"

type Context struct {
	Name        string
	Patterns    []string
	Instruction string
}

var contexts = map[string]Context{
	"python": {
		Name:     "python",
		Patterns: []string{"def ", "class ", "import ", "from ", "if ", "for ", "while "},
		Instruction: "You are a Python code completion assistant. " +
			"Complete the following Python code snippet with syntactically correct and contextually appropriate code. " +
			"Provide only the completion code without explanations:",
	},
	"javascript": {
		Name:     "javascript",
		Patterns: []string{"function ", "const ", "let ", "var ", "if ", "for ", "class "},
		Instruction: "You are a JavaScript code completion assistant. " +
			"Complete the following JavaScript code snippet with modern, syntactically correct code. " +
			"Provide only the completion code without explanations:",
	},
	"typescript": {
		Name:     "typescript",
		Patterns: []string{"function ", "const ", "let ", "interface ", "type ", "class "},
		Instruction: "You are a TypeScript code completion assistant. " +
			"Complete the following TypeScript code with proper typing. " +
			"Provide only the completion code without explanations:",
	},
	"java": {
		Name:     "java",
		Patterns: []string{"class ", "public ", "private ", "protected ", "void ", "import ", "package "},
		Instruction: "You are a Java code completion assistant. " +
			"Complete the following Java code with proper class and method structure. " +
			"Provide only the completion code without explanations:",
	},
	"csharp": {
		Name:     "csharp",
		Patterns: []string{"class ", "public ", "private ", "using ", "namespace ", "void "},
		Instruction: "You are a C# code completion assistant. " +
			"Complete the following C# code with correct syntax. " +
			"Provide only the completion code without explanations:",
	},
	"sql": {
		Name:     "sql",
		Patterns: []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE ", "ALTER ", "DROP "},
		Instruction: "You are an SQL code completion assistant. " +
			"Complete the following SQL query. " +
			"Provide only the SQL code without explanations:",
	},
	"html": {
		Name:     "html",
		Patterns: []string{"<html", "<head", "<body", "<div", "<span", "<script", "<style"},
		Instruction: "You are an HTML code completion assistant. " +
			"Complete the following HTML code. " +
			"Provide only the HTML without explanations:",
	},
	"css": {
		Name:     "css",
		Patterns: []string{"body", ".", "#", "@media", "color", "font", "background"},
		Instruction: "You are a CSS code completion assistant. " +
			"Complete the following CSS code. " +
			"Provide only the CSS without explanations:",
	},
	"go": {
		Name:     "go",
		Patterns: []string{"package ", "import ", "func ", "var ", "const ", "if ", "for "},
		Instruction: "You are a Go code completion assistant. " +
			"Complete the following Go code. " +
			"Provide only the Go code without explanations:",
	},
	"rust": {
		Name:     "rust",
		Patterns: []string{"fn ", "let ", "struct ", "enum ", "impl ", "use ", "mod "},
		Instruction: "You are a Rust code completion assistant. " +
			"Complete the following Rust code. " +
			"Provide only the Rust code without explanations:",
	},
	"php": {
		Name:     "php",
		Patterns: []string{"<?php", "function ", "class ", "$", "if ", "for ", "while "},
		Instruction: "You are a PHP code completion assistant. " +
			"Complete the following PHP code. " +
			"Provide only the PHP code without explanations:",
	},
	"ruby": {
		Name:     "ruby",
		Patterns: []string{"def ", "class ", "module ", "if ", "for ", "while ", "end"},
		Instruction: "You are a Ruby code completion assistant. " +
			"Complete the following Ruby code. " +
			"Provide only the Ruby code without explanations:",
	},
	"cpp": {
		Name:     "cpp",
		Patterns: []string{"#include", "int ", "class ", "namespace ", "if ", "for ", "while "},
		Instruction: "You are a C++ code completion assistant. " +
			"Complete the following C++ code. " +
			"Provide only the C++ code without explanations:",
	},
	"c": {
		Name:     "c",
		Patterns: []string{"#include", "int ", "void ", "char ", "if ", "for ", "while "},
		Instruction: "You are a C code completion assistant. " +
			"Complete the following C code. " +
			"Provide only the C code without explanations:",
	},
	"swift": {
		Name:     "swift",
		Patterns: []string{"func ", "class ", "struct ", "let ", "var ", "if ", "for "},
		Instruction: "You are a Swift code completion assistant. " +
			"Complete the following Swift code. " +
			"Provide only the Swift code without explanations:",
	},
	"dart": {
		Name:     "dart",
		Patterns: []string{"import ", "class ", "void ", "final ", "var ", "if ", "for "},
		Instruction: "You are a Dart code completion assistant. " +
			"Complete the following Dart code. " +
			"Provide only the Dart code without explanations:",
	},
	"scala": {
		Name:     "scala",
		Patterns: []string{"object ", "class ", "def ", "val ", "var ", "if ", "for "},
		Instruction: "You are a Scala code completion assistant. " +
			"Complete the following Scala code. " +
			"Provide only the Scala code without explanations:",
	},
}

// Lookup returns the context for a language, falling back to Python for
// anything unrecognised. The lookup is case-insensitive.
func Lookup(name string) Context {
	if ctx, ok := contexts[strings.ToLower(name)]; ok {
		return ctx
	}
	return contexts["python"]
}

// Supported lists the languages with a dedicated context.
func Supported() []string {
	names := make([]string, 0, len(contexts))
	for name := range contexts {
		names = append(names, name)
	}
	return names
}

// IsSupported reports whether the language has a dedicated context.
func IsSupported(name string) bool {
	_, ok := contexts[strings.ToLower(name)]
	return ok
}
