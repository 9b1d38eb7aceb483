// Command picnicsign generates a Picnic2 key pair (or loads one) and
// signs a message, writing the key material and signature as hex files,
// in the same flag-driven, log.Fatal-on-error shape as the teacher's
// cmd/ntru_sign.
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

func writeHexFile(path string, data []byte) {
	if err := os.WriteFile(path, []byte(hex.EncodeToString(data)), 0o644); err != nil {
		log.Fatalf("write %s: %v", path, err)
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
	keydir := flag.String("keydir", "./picnic_keys", "directory for key material")
	outSig := flag.String("out", "./signature.hex", "signature output path")
	generate := flag.Bool("generate", true, "generate a fresh key pair instead of loading one from -keydir")
	flag.Parse()

	p := paramSetByName(*level)

	if *msgPath == "" {
		log.Fatal("-msg is required")
	}
	message, err := os.ReadFile(*msgPath)
	if err != nil {
		log.Fatalf("read message: %v", err)
	}

	if err := os.MkdirAll(*keydir, 0o755); err != nil {
		log.Fatalf("mkdir %s: %v", *keydir, err)
	}

	var kp *signature.KeyPair
	if *generate {
		kp, err = signature.GenerateKeyPair(p)
		if err != nil {
			log.Fatalf("generate key pair: %v", err)
		}
		writeHexFile(filepath.Join(*keydir, "private.hex"), binmat.VectorBytes(kp.Private, p.InputSize))
		writeHexFile(filepath.Join(*keydir, "plaintext.hex"), binmat.VectorBytes(kp.Public.Plaintext, p.InputSize))
		writeHexFile(filepath.Join(*keydir, "ciphertext.hex"), binmat.VectorBytes(kp.Public.Cipher, p.InputSize))
	} else {
		priv := binmat.VectorFromBytes(p.StateBits, readHexFile(filepath.Join(*keydir, "private.hex"), p.InputSize))
		plaintext := binmat.VectorFromBytes(p.StateBits, readHexFile(filepath.Join(*keydir, "plaintext.hex"), p.InputSize))
		cipher := binmat.VectorFromBytes(p.StateBits, readHexFile(filepath.Join(*keydir, "ciphertext.hex"), p.InputSize))
		kp = &signature.KeyPair{Params: p, Private: priv, Public: &signature.PublicKey{Plaintext: plaintext, Cipher: cipher}}
	}

	sig, err := signature.Sign(kp, message)
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	writeHexFile(*outSig, sig)
	log.Printf("signed %q under %s: %d bytes -> %s", *msgPath, p.Name, len(sig), *outSig)
}
