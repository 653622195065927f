// Command dz packs, unpacks, and verifies DZ archives.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/zaparoo-labs/dzarchive/codec"
	"github.com/zaparoo-labs/dzarchive/descriptor"
	"github.com/zaparoo-labs/dzarchive/format"
	"github.com/zaparoo-labs/dzarchive/pack"
	"github.com/zaparoo-labs/dzarchive/pathutil"
	"github.com/zaparoo-labs/dzarchive/sizefix"
	"github.com/zaparoo-labs/dzarchive/unpack"
	"github.com/zaparoo-labs/dzarchive/volume"
)

const appVersion = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "pack":
		runPack(os.Args[2:])
	case "unpack":
		runUnpack(os.Args[2:])
	case "verify":
		runVerify(os.Args[2:])
	case "-version", "--version":
		fmt.Printf("dz version %s\n", appVersion)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <pack|unpack|verify> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Examples:\n")
	fmt.Fprintf(os.Stderr, "  %s pack -config repack.toml -o build/\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s unpack -i game.dz -o extracted/\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s verify -i game.dz\n", os.Args[0])
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runPack(args []string) {
	fs := flag.NewFlagSet("pack", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the repack descriptor (TOML)")
	outDir := fs.String("o", ".", "output directory for archive volumes")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Parse(args)

	logger := newLogger(*verbose)

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -config is required")
		os.Exit(1)
	}

	desc, err := descriptor.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading descriptor: %v\n", err)
		os.Exit(1)
	}

	baseDir := desc.BaseDir
	if baseDir == "" || baseDir == "." {
		if parent := filepath.Dir(*configPath); parent != "" {
			baseDir = parent
		}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	if len(desc.Volumes) == 0 {
		fmt.Fprintln(os.Stderr, "Error: descriptor lists no archive volumes")
		os.Exit(1)
	}

	files := make([]pack.FileSpec, len(desc.Files))
	for i, fe := range desc.Files {
		files[i] = pack.FileSpec{
			SourcePath:  fe.Path,
			VolumeIndex: fe.ArchiveFileIndex,
			Compression: compressionFromName(fe.Compression),
		}
	}

	mainPath := filepath.Join(*outDir, desc.Volumes[0])
	_, err = pack.Pack(mainPath, files, pack.Options{
		BaseDir:     baseDir,
		VolumeNames: desc.Volumes[1:],
		Logger:      logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error packing archive: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Packed %d files into %s\n", len(files), mainPath)
}

func compressionFromName(name string) pack.CompressionMethod {
	switch name {
	case "ZERO":
		return pack.Zero
	case "ZLIB":
		return pack.Zlib
	case "BZIP":
		return pack.Bzip
	case "LZMA":
		return pack.Lzma
	case "DZ_RANGE":
		return pack.Dz
	default:
		return pack.Copy
	}
}

func runUnpack(args []string) {
	fs := flag.NewFlagSet("unpack", flag.ExitOnError)
	inputFile := fs.String("i", "", "input archive path (required)")
	outDir := fs.String("o", ".", "output directory")
	keepRaw := fs.Bool("keep-raw", false, "copy unsupported chunks through raw instead of skipping them")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Parse(args)

	logger := newLogger(*verbose)

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: input file required (-i)")
		os.Exit(1)
	}

	report, err := unpack.Extract(*inputFile, *outDir, unpack.Options{
		KeepRaw: *keepRaw,
		Logger:  logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error unpacking archive: %v\n", err)
		os.Exit(1)
	}

	if err := writeRegeneratedDescriptor(*inputFile, *outDir); err != nil {
		logger.Warn("failed to regenerate repack descriptor", "error", err)
	}

	fmt.Printf("Extracted %d files (%d chunks skipped)\n", report.FilesWritten, len(report.ChunksSkipped))
	for _, s := range report.ChunksSkipped {
		fmt.Printf("  skipped: %s chunk %d: %v\n", s.File, s.ChunkID, s.Reason)
	}
}

func writeRegeneratedDescriptor(archivePath, outDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := format.ReadHeader(f)
	if err != nil {
		return err
	}

	desc := &descriptor.Descriptor{
		BaseDir:       ".",
		Volumes:       append([]string{filepath.Base(archivePath)}, h.Volumes...),
		RangeSettings: h.Range,
	}
	for i, fe := range h.Files {
		name := h.FileName(i)
		dir := h.DirString(fe.DirID)
		archiveRel := name
		if dir != "" {
			archiveRel = dir + "\\" + name
		}
		rel, err := pathutil.FromArchive(archiveRel)
		if err != nil {
			return err
		}
		var flags codec.Flags
		var volumeIndex uint16
		if len(fe.ChunkIDs) > 0 && int(fe.ChunkIDs[0]) < len(h.Chunks) {
			flags = h.Chunks[fe.ChunkIDs[0]].Flags
			volumeIndex = h.Chunks[fe.ChunkIDs[0]].File
		}
		names := codec.DecodeFlags(flags)
		compressionName := "COPY"
		if len(names) > 0 {
			compressionName = names[0]
		}
		desc.Files = append(desc.Files, descriptor.FileEntry{
			Path:             rel,
			ArchiveFileIndex: volumeIndex,
			Compression:      compressionName,
		})
	}

	return desc.Save(filepath.Join(outDir, filepath.Base(archivePath)+".toml"))
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	inputFile := fs.String("i", "", "input archive path (required)")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Parse(args)

	_ = newLogger(*verbose)

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: input file required (-i)")
		os.Exit(1)
	}

	f, err := os.Open(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening archive: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	h, err := format.ReadHeader(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading header: %v\n", err)
		os.Exit(1)
	}

	mgr := volume.NewManager(*inputFile, h.Volumes)
	defer mgr.Close()

	chunks, err := sizefix.Correct(h.Chunks, mgr.Size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error correcting chunk sizes: %v\n", err)
		os.Exit(1)
	}
	h.Chunks = chunks

	reg := codec.NewRegistry()
	failed := 0
	for i, entry := range h.Files {
		name := h.FileName(i)
		ok := true
		for _, chunkID := range entry.ChunkIDs {
			chunk := h.Chunks[chunkID]
			vol, err := mgr.Open(chunk.File)
			if err != nil {
				ok = false
				break
			}
			section := io.NewSectionReader(vol, int64(chunk.Offset), int64(chunk.CompressedLength))
			if err := reg.Decompress(io.Discard, section, chunk.Flags, chunk.DecompressedLength); err != nil {
				ok = false
				break
			}
		}
		if ok {
			fmt.Printf("OK   %s\n", name)
		} else {
			fmt.Printf("FAIL %s\n", name)
			failed++
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
