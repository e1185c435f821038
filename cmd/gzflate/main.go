// Command gzflate compresses or decompresses a file using the gzflate
// library, in deflate, zlib, or gzip framing.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nazgaron/gzflate/gzip"
	"github.com/nazgaron/gzflate/level"
	"github.com/nazgaron/gzflate/read"
)

var (
	decompress = flag.Bool("d", false, "decompress instead of compress")
	format     = flag.String("f", "gzip", "framing: gzip, zlib, or deflate")
	levelFlag  = flag.Int("l", int(level.Default), "compression level 0-9 (ignored with -d)")
	multi      = flag.Bool("multi", false, "gzip only: decode every concatenated member (ignored without -d)")
	output     = flag.String("o", "", "output file path (default: stdout)")
	version    = flag.Bool("version", false, "print version and exit")
)

const appVersion = "0.1.0"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <input>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Compresses or decompresses a file with gzflate.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -f gzip -l 9 -o out.gz in.bin\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -d -f gzip -o out.bin in.gz\n", os.Args[0])
	}
	flag.Parse()

	if *version {
		fmt.Printf("gzflate version %s\n", appVersion)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: exactly one input file required\n")
		flag.Usage()
		os.Exit(1)
	}

	in, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening input: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	out := io.Writer(os.Stdout)
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := run(in, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer) error {
	if *decompress {
		return runDecompress(in, out)
	}
	return runCompress(in, out)
}

func runDecompress(in io.Reader, out io.Writer) error {
	var src io.Reader
	switch *format {
	case "gzip":
		if *multi {
			src = read.NewGzipMultiReader(in)
		} else {
			src = read.NewGzipReader(in)
		}
	case "zlib":
		src = read.NewZlibReader(in, nil)
	case "deflate":
		src = read.NewDeflateReader(in, nil)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
	_, err := io.Copy(out, src)
	return err
}

func runCompress(in io.Reader, out io.Writer) error {
	lvl, err := level.New(*levelFlag)
	if err != nil {
		return err
	}

	switch *format {
	case "gzip":
		w, err := gzip.NewWriter(out, lvl)
		if err != nil {
			return err
		}
		if _, err := io.Copy(w, in); err != nil {
			return err
		}
		return w.Close()
	case "zlib":
		src, err := read.NewZlibEncodeReader(in, lvl, nil)
		if err != nil {
			return err
		}
		_, err = io.Copy(out, src)
		return err
	case "deflate":
		src, err := read.NewDeflateEncodeReader(in, lvl, nil)
		if err != nil {
			return err
		}
		_, err = io.Copy(out, src)
		return err
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}
