// Command xmlform extracts and renders form fields from annotated documents.
package main

import (
	"github.com/goliatone/go-xmlform/internal/cmd"
)

func main() {
	cmd.Execute()
}
