package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/popup/pkg/popup"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a profile and print its resolved values",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	fmt.Printf("keymap: escape=%d back=%d\n", profile.Keymap.Escape, profile.Keymap.Back)

	switch tr := profile.Transition.(type) {
	case popup.None:
		fmt.Printf("transition: none background=%08X\n", uint32(tr.Background))
	case popup.Fade:
		fmt.Printf("transition: fade in=%s out=%s background=%08X\n",
			tr.In, tr.Out, uint32(tr.Background))
	case popup.Slide:
		fmt.Printf("transition: slide in=%s out=%s direction=%s background=%08X\n",
			tr.In, tr.Out, tr.Direction, uint32(tr.Background))
	default:
		fmt.Printf("transition: %T\n", tr)
	}

	if profile.Pool != nil {
		fmt.Println("pool: enabled")
	} else {
		fmt.Println("pool: disabled")
	}
	fmt.Printf("surface: %gx%g\n", surfaceSize().Width, surfaceSize().Height)
	return nil
}
