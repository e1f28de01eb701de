// Package raid holds the joke raid commands: checklists, the pull
// countdown and a fake damage meter.
package raid

import (
	"fmt"
	"io"
)

// ReadyCheck is the ready-check checklist, in print order
var ReadyCheck = []string{
	"Repair (100%)",
	"Talents/Spec correct",
	"UI/Addons loaded",
	"WeakAuras ok",
	"Logs/recording ok",
	"Enchants/Gems ok",
	"Rune + Flask + Food ok",
}

// Consumables is the consumables checklist, in print order
var Consumables = []string{
	"Flask",
	"Food (feast/personal)",
	"Weapon oil / sharpening",
	"Augment rune",
	"Health potions",
	"Pre-pot",
	"Healthstone in bags",
	"Tomes",
	"Vantus rune",
}

func printChecklist(w io.Writer, title string, items []string, footer string) {
	fmt.Fprintf(w, "=== %s ===\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "[ ] %s\n", item)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, footer)
}

// PrintReadyCheck writes the ready-check checklist
func PrintReadyCheck(w io.Writer) {
	printChecklist(w, "RAID READY CHECK", ReadyCheck,
		"Type 'raider raid consumes' for consumables checklist.")
}

// PrintConsumables writes the consumables checklist
func PrintConsumables(w io.Writer) {
	printChecklist(w, "CONSUMABLES CHECKLIST", Consumables,
		"Tip: keep 2+ stacks of pots for prog nights.")
}
