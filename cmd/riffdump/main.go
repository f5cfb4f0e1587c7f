package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattetti/riffkit/internal/inspector"
	"github.com/mattetti/riffkit/internal/riff"
	"github.com/mattetti/riffkit/internal/wavmeta"
)

var (
	inputPath  string
	outputPath string
	maxDepth   int
	wavInfo    bool
	debugMode  bool
	version    bool
)

func init() {
	flag.StringVar(&inputPath, "i", "", "Input RIFF file (required)")
	flag.StringVar(&outputPath, "o", "", "Repack the container into this file instead of dumping it")
	flag.IntVar(&maxDepth, "depth", 0, "Maximum tree depth to dump (0 = unlimited)")
	flag.BoolVar(&wavInfo, "wav", false, "Print WAV format summary instead of the chunk tree")
	flag.BoolVar(&debugMode, "d", false, "Debug mode")
	flag.BoolVar(&version, "version", false, "Display version information")
}

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	// Display version if requested
	if version {
		fmt.Printf("riffdump version %s\n", VERSION)
		os.Exit(0)
	}

	if inputPath == "" {
		fmt.Println("Error: input file is required (-i)")
		flag.Usage()
		os.Exit(1)
	}

	in, err := riff.OpenFile(inputPath)
	if err != nil {
		fmt.Printf("Error opening %s: %v\n", inputPath, err)
		os.Exit(1)
	}
	defer in.Close()

	if wavInfo {
		if err := printWAVInfo(); err != nil {
			fmt.Printf("Error reading WAV info from %s: %v\n", inputPath, err)
			os.Exit(1)
		}
		return
	}

	ins := inspector.New(inspector.Options{Debug: debugMode, MaxDepth: maxDepth})

	if outputPath != "" {
		if err := repack(ins, in); err != nil {
			fmt.Printf("Error repacking %s: %v\n", inputPath, err)
			os.Exit(1)
		}
		fmt.Printf("Repacked %s into %s\n", inputPath, outputPath)
		return
	}

	if err := ins.Dump(in.Root(), os.Stdout); err != nil {
		fmt.Printf("Error dumping %s: %v\n", inputPath, err)
		os.Exit(1)
	}
}

// printWAVInfo reopens the input as a WAV container and prints its format.
// The fresh handle avoids sharing a consumed root list with the dump path.
func printWAVInfo() error {
	f, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := wavmeta.ReadInfo(f)
	if err != nil {
		return err
	}
	fmt.Printf("format:          %d\n", info.Format.AudioFormat)
	fmt.Printf("channels:        %d\n", info.Format.NumChannels)
	fmt.Printf("sample rate:     %d Hz\n", info.Format.SampleRate)
	fmt.Printf("bits per sample: %d\n", info.Format.BitsPerSample)
	fmt.Printf("data size:       %d bytes\n", info.DataLength)
	return nil
}

func repack(ins *inspector.Inspector, in *riff.File) error {
	out, err := riff.CreateFile(outputPath, in.Root().ListType())
	if err != nil {
		return err
	}
	if err := ins.Repack(in.Root(), out.Root()); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
