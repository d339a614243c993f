// Command kitscan reads the lot and expiry code from a photo of a reagent
// kit label.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"reagent-reader/internal/kit"
)

func main() {
	imagePath := flag.String("image", "", "Path to label photo")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: kitscan -image <path>")
		os.Exit(1)
	}

	engine, err := kit.NewEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start OCR engine: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	label, err := engine.ScanFile(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
		os.Exit(1)
	}

	if label.Lot == "" && label.Expiry.IsZero() {
		fmt.Println("No lot or expiry code found on label")
		os.Exit(1)
	}

	if label.Lot != "" {
		fmt.Printf("Lot:      %s\n", label.Lot)
	}
	if !label.Produced.IsZero() {
		fmt.Printf("Produced: %s\n", label.Produced.Format("2 Jan 2006"))
	}
	if !label.Expiry.IsZero() {
		fmt.Printf("Expiry:   %s\n", label.Expiry.Format("Jan 2006"))
		if label.Expired(time.Now()) {
			fmt.Println("\nWARNING: kit is expired; readings will be unreliable")
		}
	}
}
