// Command qarrot reduces the T-count of a Clifford+T circuit given in
// the textual Pauli-rotation format or a restricted OpenQASM 2.0 subset,
// driving internal/orchestrator's fold/push-T-forward/partition loop and
// writing the result back out in the same textual format it reads.
package main

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/hydraresearch/qarrot/internal/attest"
	"github.com/hydraresearch/qarrot/internal/config"
	"github.com/hydraresearch/qarrot/internal/orchestrator"
	"github.com/hydraresearch/qarrot/internal/qasmfmt"
	"github.com/hydraresearch/qarrot/internal/telemetry"
	"github.com/hydraresearch/qarrot/internal/textfmt"
)

func main() {
	telemetry.Init()

	if err := config.LoadEnv(); err != nil {
		slog.Warn("loading .env defaults", "error", err)
	}

	app := cli.NewApp()
	app.Name = "qarrot"
	app.Usage = "reduce the T-count of a Clifford+T circuit in the Pauli-rotation formalism"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "input, i", Usage: "input path, or \"STDIN\" to read standard input"},
		cli.StringFlag{Name: "output, o", Usage: "output path"},
		cli.StringFlag{Name: "file-type, t", Usage: "\"txt\" or \"qasm\"; inferred from the input's extension if omitted"},
		cli.BoolFlag{Name: "big-file, b", Usage: "stream the circuit through swap files instead of holding it in memory"},
		cli.IntFlag{Name: "num-operations, n", Usage: "hint at the circuit's operation count, to reduce reallocation"},
		cli.IntFlag{Name: "target-buffer-length", Value: 16384, Usage: "operations buffered per streaming round"},
		cli.BoolFlag{Name: "shrink-buffer-after-repeat, s", Usage: "shrink the operation buffer back down after expanding a repeat block"},
		cli.BoolFlag{Name: "overwrite", Usage: "allow overwriting an existing output path"},
		cli.BoolFlag{Name: "bypass", Usage: "skip optimization; writes the parsed input back out unmodified"},
		cli.StringFlag{Name: "decompression-algorithm", Usage: "force a decompression method (\"gz\" or \"gzip\") instead of inferring it from the input's extension"},
		cli.BoolFlag{Name: "compress-output, c", Usage: "gzip-compress the output"},
		cli.BoolFlag{Name: "full-partitioning, f", Usage: "use the exact partitioner instead of the fast approximate one"},
		cli.BoolFlag{Name: "sign", Usage: "write a detached ML-DSA-87 signature of the output, alongside its public key"},
	}
	app.Action = runOptimize

	if err := app.Run(os.Args); err != nil {
		slog.Error("qarrot failed", "error", err)
		os.Exit(1)
	}
}

func runOptimize(c *cli.Context) error {
	inputArg := c.String("input")
	outputArg := c.String("output")
	if inputArg == "" {
		return cli.NewExitError("--input is required", 1)
	}
	if outputArg == "" {
		return cli.NewExitError("--output is required", 1)
	}

	cfg := config.Default()
	cfg.Bypass = c.Bool("bypass")
	cfg.ShrinkBufferAfterRepeat = c.Bool("shrink-buffer-after-repeat")
	cfg.FullPartitioning = c.Bool("full-partitioning")
	cfg.BigFile = c.Bool("big-file")
	cfg.TargetBufferLength = c.Int("target-buffer-length")
	if c.IsSet("num-operations") {
		n := c.Int("num-operations")
		cfg.NumOperations = &n
	}
	if ft := c.String("file-type"); ft != "" {
		parsed, err := config.FileTypeFromString(ft)
		if err != nil {
			return err
		}
		cfg.FileType = parsed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	isStdin := strings.EqualFold(inputArg, "STDIN")

	if !isStdin {
		info, err := os.Stat(inputArg)
		if err != nil {
			return fmt.Errorf("cmd/qarrot: input path %q: %w", inputArg, err)
		}
		if info.IsDir() {
			return fmt.Errorf("cmd/qarrot: input path %q is a directory", inputArg)
		}
	}

	if !c.Bool("overwrite") {
		if _, err := os.Stat(outputArg); err == nil {
			return fmt.Errorf("cmd/qarrot: output path %q already exists; pass --overwrite to replace it", outputArg)
		}
	}

	if cfg.FileType == config.FileTypeOther && !isStdin {
		if ft, ok := fileTypeFromExtension(inputArg); ok {
			cfg.FileType = ft
		}
	}
	if cfg.FileType == config.FileTypeOther {
		return fmt.Errorf("cmd/qarrot: could not infer the file type from %q; pass --file-type", inputArg)
	}

	decompAlgo := c.String("decompression-algorithm")
	if decompAlgo == "" && !isStdin {
		decompAlgo = decompressionFromExtension(inputArg)
	}
	if decompAlgo != "" && decompAlgo != "gz" && decompAlgo != "gzip" {
		return fmt.Errorf("cmd/qarrot: unrecognized decompression algorithm %q", decompAlgo)
	}

	var in io.Reader
	if isStdin {
		in = os.Stdin
	} else {
		f, err := os.Open(inputArg)
		if err != nil {
			return fmt.Errorf("cmd/qarrot: opening input: %w", err)
		}
		defer f.Close()
		in = f
	}
	if decompAlgo != "" {
		gz, err := gzip.NewReader(in)
		if err != nil {
			return fmt.Errorf("cmd/qarrot: decompressing input: %w", err)
		}
		defer gz.Close()
		in = gz
	}

	outFile, err := os.Create(outputArg)
	if err != nil {
		return fmt.Errorf("cmd/qarrot: creating output: %w", err)
	}
	defer outFile.Close()

	var rawOut io.Writer = outFile
	var gzOut *gzip.Writer
	if c.Bool("compress-output") {
		gzOut = gzip.NewWriter(outFile)
		rawOut = gzOut
	}

	nQubits, source, err := buildSource(cfg, in)
	if err != nil {
		return err
	}

	writer := textfmt.NewBufferedWriter(rawOut)
	if err := orchestrator.Run(nQubits, source, writer, cfg); err != nil {
		return err
	}
	if gzOut != nil {
		if err := gzOut.Close(); err != nil {
			return fmt.Errorf("cmd/qarrot: finishing compressed output: %w", err)
		}
	}

	if c.Bool("sign") {
		if err := signOutput(outputArg); err != nil {
			return err
		}
	}

	return nil
}

// buildSource selects the front end matching cfg.FileType and reads just
// enough of in to learn the circuit's qubit count, returning an
// OperationSource over everything that follows.
func buildSource(cfg config.RunConfig, in io.Reader) (int, orchestrator.OperationSource, error) {
	switch cfg.FileType {
	case config.FileTypeQasm:
		tokens := qasmfmt.NewTokenSource(in)
		nQubits, err := qasmfmt.ReadHeader(tokens)
		if err != nil {
			return 0, nil, fmt.Errorf("cmd/qarrot: reading OpenQASM header: %w", err)
		}
		reader := qasmfmt.NewInstructionReader(tokens, nQubits, cfg.TargetBufferLength)
		return nQubits, reader, nil

	case config.FileTypeTxt:
		nQubits, full, err := inferTxtQubits(in)
		if err != nil {
			return 0, nil, err
		}
		tokens := textfmt.NewTokenSource(full)
		reader := textfmt.NewInstructionReader(tokens, nQubits, cfg.TargetBufferLength, cfg.ShrinkBufferAfterRepeat)
		return nQubits, orchestrator.NewEOFSource(reader), nil

	default:
		return 0, nil, fmt.Errorf("cmd/qarrot: unsupported file type %v", cfg.FileType)
	}
}

var textExtensions = map[string]config.FileType{
	"txt": config.FileTypeTxt,
	"qasm": config.FileTypeQasm,
}

var decompressionExtensions = map[string]string{
	"gz":   "gz",
	"gzip": "gzip",
}

// fileTypeFromExtension infers the circuit format from path's extension,
// looking one level past a trailing compression suffix (e.g.
// "circuit.qasm.gz" is qasm, compressed).
func fileTypeFromExtension(path string) (config.FileType, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if _, compressed := decompressionExtensions[ext]; compressed {
		path = strings.TrimSuffix(path, filepath.Ext(path))
		ext = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	ft, ok := textExtensions[ext]
	return ft, ok
}

// decompressionFromExtension infers a decompression algorithm from
// path's trailing extension, or "" if none is recognized.
func decompressionFromExtension(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return decompressionExtensions[ext]
}

// signOutput computes the BLAKE3 digest of the already-written output
// path, signs it with a freshly generated ML-DSA-87 keypair, and writes
// the detached signature and public key alongside it as path+".sig" and
// path+".pub".
func signOutput(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cmd/qarrot: reopening output to sign: %w", err)
	}
	defer f.Close()

	digest, err := attest.DigestReader(bufio.NewReader(f))
	if err != nil {
		return err
	}

	signer, err := attest.NewSigner()
	if err != nil {
		return err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return err
	}
	pubBytes, err := signer.PublicKey().MarshalBinary()
	if err != nil {
		return fmt.Errorf("cmd/qarrot: marshaling signing public key: %w", err)
	}

	if err := os.WriteFile(path+".sig", sig, 0o644); err != nil {
		return fmt.Errorf("cmd/qarrot: writing signature: %w", err)
	}
	if err := os.WriteFile(path+".pub", pubBytes, 0o644); err != nil {
		return fmt.Errorf("cmd/qarrot: writing public key: %w", err)
	}
	slog.Info("signed output", "signature", path+".sig", "public_key", path+".pub")
	return nil
}
