package commit

import (
	"bytes"
	"testing"
)

func TestCommitDeterministic(t *testing.T) {
	seed := []byte("seed-material-0123456789abcdef")
	salt := bytes.Repeat([]byte{0x42}, 32)
	a := Commit(seed, nil, salt, 3, 7, 32)
	b := Commit(seed, nil, salt, 3, 7, 32)
	if !bytes.Equal(a, b) {
		t.Fatal("Commit is not deterministic")
	}
}

func TestCommitSensitiveToEveryField(t *testing.T) {
	seed := []byte("seed")
	aux := []byte("aux-bits")
	salt := bytes.Repeat([]byte{0x11}, 32)
	base := Commit(seed, aux, salt, 1, 2, 32)

	variants := [][]byte{
		Commit([]byte("Seed"), aux, salt, 1, 2, 32),
		Commit(seed, []byte("Aux-bits"), salt, 1, 2, 32),
		Commit(seed, aux, bytes.Repeat([]byte{0x12}, 32), 1, 2, 32),
		Commit(seed, aux, salt, 2, 2, 32),
		Commit(seed, aux, salt, 1, 3, 32),
		Commit(seed, nil, salt, 1, 2, 32),
	}
	for i, v := range variants {
		if bytes.Equal(base, v) {
			t.Fatalf("variant %d collided with base commitment", i)
		}
	}
}

func TestCommitX4MatchesScalar(t *testing.T) {
	salt := bytes.Repeat([]byte{0x99}, 32)
	seeds := [4][]byte{[]byte("s0"), []byte("s1"), []byte("s2"), []byte("s3")}
	var auxes [4][]byte

	got := CommitX4(seeds, auxes, salt, 5, 10, 32)
	for i := 0; i < 4; i++ {
		want := Commit(seeds[i], nil, salt, 5, 10+i, 32)
		if !bytes.Equal(got[i], want) {
			t.Fatalf("lane %d: CommitX4 = %x, want %x", i, got[i], want)
		}
	}
}

func TestHOrderSensitive(t *testing.T) {
	c1 := []byte("commitment-one-aaaaaaaaaaaaaaaaa")
	c2 := []byte("commitment-two-bbbbbbbbbbbbbbbbb")
	a := H([][]byte{c1, c2}, 32)
	b := H([][]byte{c2, c1}, 32)
	if bytes.Equal(a, b) {
		t.Fatal("H did not depend on commitment order")
	}
}

func TestVDependsOnMessages(t *testing.T) {
	input := bytes.Repeat([]byte{0x07}, 16)
	msgsA := [][]byte{{0x01, 0x02}, {0x03, 0x04}}
	msgsB := [][]byte{{0x01, 0x02}, {0x03, 0x05}}
	a := V(input, msgsA, 32)
	b := V(input, msgsB, 32)
	if bytes.Equal(a, b) {
		t.Fatal("V did not depend on message contents")
	}
}
