// Package gemini implements the generation.DistractorGenerator interface
// using Google's Gemini API via the google.golang.org/genai client.
package gemini
