// Package token defines lexical token kinds and trivia for the quill
// front-end. Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Comments and whitespace never appear in the main token stream;
//     they are attached to the next token as leading Trivia.
//   - Keywords are case-sensitive; only lowercase forms are recognized.
package token
