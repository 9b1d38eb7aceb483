// Command picnicverify checks a Picnic2 signature produced by
// cmd/picnicsign against the matching public key and message.
package main

import (
	"encoding/hex"
	"flag"
	"log"
	"os"
	"path/filepath"

	"Picnic2-Signature/binmat"
	"Picnic2-Signature/params"
	"Picnic2-Signature/signature"
)

func paramSetByName(name string) *params.ParamSet {
	switch name {
	case "L1", "L1-FS", "":
		return params.L1FS
	case "L3", "L3-FS":
		return params.L3FS
	case "L5", "L5-FS":
		return params.L5FS
	default:
		log.Fatalf("unknown parameter set %q", name)
		return nil
	}
}

func readHexFile(path string, nbytes int) []byte {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	data, err := hex.DecodeString(string(raw))
	if err != nil {
		log.Fatalf("decode %s: %v", path, err)
	}
	if nbytes > 0 && len(data) != nbytes {
		log.Fatalf("%s: got %d bytes, want %d", path, len(data), nbytes)
	}
	return data
}

func main() {
	level := flag.String("level", "L1", "security level: L1, L3, or L5")
	msgPath := flag.String("msg", "", "message file path")
	keydir := flag.String("keydir", "./picnic_keys", "directory holding plaintext.hex and ciphertext.hex")
	sigPath := flag.String("sig", "./signature.hex", "signature input path")
	flag.Parse()

	p := paramSetByName(*level)

	if *msgPath == "" {
		log.Fatal("-msg is required")
	}
	message, err := os.ReadFile(*msgPath)
	if err != nil {
		log.Fatalf("read message: %v", err)
	}

	plaintext := binmat.VectorFromBytes(p.StateBits, readHexFile(filepath.Join(*keydir, "plaintext.hex"), p.InputSize))
	cipher := binmat.VectorFromBytes(p.StateBits, readHexFile(filepath.Join(*keydir, "ciphertext.hex"), p.InputSize))
	pub := &signature.PublicKey{Plaintext: plaintext, Cipher: cipher}

	sig := readHexFile(*sigPath, 0)

	if err := signature.Verify(p, pub, message, sig); err != nil {
		log.Fatalf("signature rejected: %v", err)
	}
	log.Printf("signature accepted for %q under %s", *msgPath, p.Name)
}
