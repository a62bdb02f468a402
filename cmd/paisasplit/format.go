package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mmynk/paisasplit/internal/money"
)

const rupee = "₹"

func rupees(a money.Amount) string {
	if a < 0 {
		return "-" + rupee + money.Format(a)
	}
	return rupee + money.Format(a)
}

// balanceText describes a balance from the current user's side.
func balanceText(a money.Amount) string {
	switch a.Sign() {
	case 1:
		return "owes you " + rupee + money.Format(a)
	case -1:
		return "you owe " + rupee + money.Format(a)
	}
	return "settled up"
}

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("─", len([]rune(title))))
}
