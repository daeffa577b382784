// Package attest provides integrity attestation for an optimized
// circuit: a BLAKE3 digest of its canonical textual form, and optional
// post-quantum signing/verification of that digest so a downstream
// consumer can confirm the output came from a trusted run.
package attest

import (
	"fmt"
	"io"
	"strings"

	"github.com/cloudflare/circl/sign/mldsa/mldsa87"
	"lukechampine.com/blake3"

	"github.com/hydraresearch/qarrot/internal/operation"
	"github.com/hydraresearch/qarrot/internal/textfmt"
)

// Digest returns the 32-byte BLAKE3 digest of circuit's canonical
// textual form (the same grammar textfmt.FormatOperation writes to
// disk), so two runs that produce the same operations in the same order
// attest identically regardless of how they were produced.
func Digest(nQubits int, circuit []*operation.Operation) ([]byte, error) {
	hasher := blake3.New(32, nil)
	var line strings.Builder
	for _, op := range circuit {
		if op.IsNop() {
			continue
		}
		if err := textfmt.FormatOperation(&line, nQubits, op); err != nil {
			return nil, fmt.Errorf("attest: formatting operation for digest: %w", err)
		}
		hasher.Write([]byte(line.String()))
	}
	return hasher.Sum(nil), nil
}

// DigestReader returns the 32-byte BLAKE3 digest of r's raw bytes. It
// lets a caller attest an already-written output file directly, without
// re-reading it back into a circuit first — equivalent to Digest when r
// holds exactly the textfmt-formatted bytes Digest would have hashed.
func DigestReader(r io.Reader) ([]byte, error) {
	hasher := blake3.New(32, nil)
	if _, err := io.Copy(hasher, r); err != nil {
		return nil, fmt.Errorf("attest: hashing output: %w", err)
	}
	return hasher.Sum(nil), nil
}

// Signer wraps an ML-DSA-87 keypair for signing a circuit digest.
type Signer struct {
	pub  *mldsa87.PublicKey
	priv *mldsa87.PrivateKey
}

// NewSigner generates a fresh ML-DSA-87 keypair.
func NewSigner() (*Signer, error) {
	pub, priv, err := mldsa87.GenerateKey(nil)
	if err != nil {
		return nil, fmt.Errorf("attest: generating signing key: %w", err)
	}
	return &Signer{pub: pub, priv: priv}, nil
}

// PublicKey returns the signer's ML-DSA-87 public key, which a verifier needs.
func (s *Signer) PublicKey() *mldsa87.PublicKey { return s.pub }

// Sign produces a detached signature over digest.
func (s *Signer) Sign(digest []byte) ([]byte, error) {
	sig := make([]byte, mldsa87.SignatureSize)
	if err := mldsa87.SignTo(s.priv, digest, nil, true, sig); err != nil {
		return nil, fmt.Errorf("attest: signing digest: %w", err)
	}
	return sig, nil
}

// Verify checks a detached signature over digest against pub.
func Verify(pub *mldsa87.PublicKey, digest, sig []byte) bool {
	return mldsa87.Verify(pub, digest, nil, sig)
}
