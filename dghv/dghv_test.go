package dghv_test

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/andronat/libshe/dghv"
	"github.com/andronat/libshe/shard"
	"github.com/stretchr/testify/require"
)

// newTestKeys is shared scaffolding for the scenarios in spec.md §8:
// s=60, l=8 throughout.
func newTestKeys(t *testing.T) (*dghv.SecretKey, *dghv.PublicKey) {
	t.Helper()
	kgen := dghv.NewKeyGenerator()
	sk, pk, err := kgen.GenKeyPairNew(60, 8)
	require.NoError(t, err)
	return sk, pk
}

func encryptBits(t *testing.T, pk *dghv.PublicKey, sk *dghv.SecretKey, m []bool) *dghv.Ciphertext {
	t.Helper()
	enc, err := dghv.NewEncryptor(pk, sk)
	require.NoError(t, err)
	ct, err := enc.Encrypt(m)
	require.NoError(t, err)
	return ct
}

func decryptBits(t *testing.T, sk *dghv.SecretKey, ct *dghv.Ciphertext) []bool {
	t.Helper()
	dec, err := dghv.NewDecryptor(sk)
	require.NoError(t, err)
	m, err := dec.Decrypt(ct)
	require.NoError(t, err)
	return m
}

// stringToBigInt decodes the base-62 text form shared by bigint.Int.Text,
// used here only to cross-check the p | x invariant independently of the
// dghv package's own arithmetic.
func stringToBigInt(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 62)
	if !ok {
		return nil, fmt.Errorf("invalid base-62 text %q", s)
	}
	return v, nil
}

func bits(vals ...int) []bool {
	out := make([]bool, len(vals))
	for i, v := range vals {
		out[i] = v != 0
	}
	return out
}

// Scenario 1 (spec.md §8): decrypt(encrypt(m)) == m.
func TestEncryptDecryptRoundTrip(t *testing.T) {
	sk, pk := newTestKeys(t)
	m := bits(1, 0, 0, 1, 0, 1, 0, 1)

	ct := encryptBits(t, pk, sk, m)
	require.Equal(t, len(m), ct.Len())

	got := decryptBits(t, sk, ct)
	require.Equal(t, m, got)
}

// Scenario 2: XOR homomorphism over two ciphertexts.
func TestXORMany(t *testing.T) {
	sk, pk := newTestKeys(t)
	m1 := bits(1, 0, 0, 1, 0, 1, 0, 1)
	m2 := bits(1, 0, 0, 1, 0, 1, 0, 0)
	want := bits(0, 0, 0, 0, 0, 0, 0, 1)

	c1 := encryptBits(t, pk, sk, m1)
	c2 := encryptBits(t, pk, sk, m2)

	ev, err := dghv.NewEvaluator(pk)
	require.NoError(t, err)

	r, err := ev.XORMany([]*dghv.Ciphertext{c1, c2}, 2, 8)
	require.NoError(t, err)

	got := decryptBits(t, sk, r)
	require.Equal(t, want, got)
}

// Scenario 3: sumprod row-equality contract, both shard variants.
func TestSumProdRowEquality(t *testing.T) {
	sk, pk := newTestKeys(t)
	aBits := bits(0, 1, 1, 1, 1, 1, 1, 1)
	a := encryptBits(t, pk, sk, aBits)

	ev, err := dghv.NewEvaluator(pk)
	require.NoError(t, err)

	t.Run("neither row matches", func(t *testing.T) {
		b, err := shard.New(8)
		require.NoError(t, err)
		require.NoError(t, b.AppendRow(bits(1, 1, 1, 0, 0, 0, 0, 0)))
		require.NoError(t, b.AppendRow(bits(1, 1, 1, 1, 1, 1, 1, 1)))

		r, err := ev.SumProd(a, b)
		require.NoError(t, err)

		got := decryptBits(t, sk, r)
		require.Equal(t, bits(0, 0), got)
	})

	t.Run("row 1 matches a_bits", func(t *testing.T) {
		b, err := shard.New(8)
		require.NoError(t, err)
		require.NoError(t, b.AppendRow(bits(1, 1, 1, 0, 0, 0, 0, 0)))
		require.NoError(t, b.AppendRow(aBits))

		r, err := ev.SumProd(a, b)
		require.NoError(t, err)

		got := decryptBits(t, sk, r)
		require.Equal(t, bits(0, 1), got)
	})
}

// Scenario 4: dot realizes the column-wise XOR-mask PIR response.
func TestDot(t *testing.T) {
	sk, pk := newTestKeys(t)

	b, err := shard.New(8)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		row := make([]bool, 8)
		for j := 0; j < 8; j++ {
			row[j] = (i*8+j)%2 == 0
		}
		require.NoError(t, b.AppendRow(row))
	}

	g := encryptBits(t, pk, sk, bits(0, 1))

	ev, err := dghv.NewEvaluator(pk)
	require.NoError(t, err)

	r, err := ev.Dot(g, b)
	require.NoError(t, err)

	got := decryptBits(t, sk, r)
	want := make([]bool, 8)
	for j := 0; j < 8; j++ {
		var acc bool
		for i := 0; i < 2; i++ {
			if (i*8+j)%2 == 0 {
				acc = acc != (bits(0, 1)[i])
			}
		}
		want[j] = acc
	}
	require.Equal(t, want, got)
}

// Scenario 5: key serialization round trip, then re-encrypt/decrypt.
func TestKeySerializationRoundTrip(t *testing.T) {
	sk, pk := newTestKeys(t)

	skText, err := sk.MarshalText()
	require.NoError(t, err)
	pkText, err := pk.MarshalText()
	require.NoError(t, err)

	var sk2 dghv.SecretKey
	require.NoError(t, sk2.UnmarshalText(skText))
	var pk2 dghv.PublicKey
	require.NoError(t, pk2.UnmarshalText(pkText))

	require.Equal(t, sk.P.Text(), sk2.P.Text())
	require.Equal(t, pk.X.Text(), pk2.X.Text())

	m := bits(1, 1, 0, 0, 1, 0, 1, 1)
	ct := encryptBits(t, &pk2, &sk2, m)
	got := decryptBits(t, &sk2, ct)
	require.Equal(t, m, got)
}

// Scenario 6: s=0 or l=0 is rejected.
func TestGenSecretKeyRejectsZeroParameters(t *testing.T) {
	kgen := dghv.NewKeyGenerator()

	_, err := kgen.GenSecretKeyNew(0, 8)
	require.ErrorIs(t, err, dghv.ErrParameterInvalid)

	_, err = kgen.GenSecretKeyNew(60, 0)
	require.ErrorIs(t, err, dghv.ErrParameterInvalid)
}

func TestKeyShapeInvariants(t *testing.T) {
	sk, pk := newTestKeys(t)

	require.True(t, sk.P.IsOdd())
	require.Equal(t, sk.Etha, sk.P.BitLen())

	xBig, err := stringToBigInt(pk.X.Text())
	require.NoError(t, err)
	pBig, err := stringToBigInt(sk.P.Text())
	require.NoError(t, err)

	rem := new(big.Int).Mod(xBig, pBig)
	require.Equal(t, 0, rem.Sign())
	require.LessOrEqual(t, pk.X.BitLen(), pk.Gamma)
}

func TestCiphertextRangeInvariant(t *testing.T) {
	sk, pk := newTestKeys(t)
	ct := encryptBits(t, pk, sk, bits(1, 0, 1, 0, 1, 0, 1, 0))

	for _, e := range ct.Elements {
		require.GreaterOrEqual(t, e.Sign(), 0)
		require.Less(t, e.Cmp(pk.X), 0)
	}
}

func TestEncryptRejectsShapeMismatch(t *testing.T) {
	_, pk := newTestKeys(t)
	sk2, err := dghv.NewKeyGenerator().GenSecretKeyNew(60, 4)
	require.NoError(t, err)

	_, err = dghv.NewEncryptor(pk, sk2)
	require.ErrorIs(t, err, dghv.ErrShapeMismatch)
}

func TestXORManyRejectsShapeMismatch(t *testing.T) {
	sk, pk := newTestKeys(t)
	c1 := encryptBits(t, pk, sk, bits(1, 0, 1, 0, 1, 0, 1, 0))
	c2 := encryptBits(t, pk, sk, bits(1, 0, 1))

	ev, err := dghv.NewEvaluator(pk)
	require.NoError(t, err)

	_, err = ev.XORMany([]*dghv.Ciphertext{c1, c2}, 2, 8)
	require.ErrorIs(t, err, dghv.ErrShapeMismatch)
}

func TestCiphertextSerializationRoundTrip(t *testing.T) {
	sk, pk := newTestKeys(t)
	ct := encryptBits(t, pk, sk, bits(1, 1, 0, 1))

	text, err := ct.MarshalText()
	require.NoError(t, err)

	var ct2 dghv.Ciphertext
	require.NoError(t, ct2.UnmarshalText(text))
	require.Equal(t, len(ct.Elements), len(ct2.Elements))
	for i := range ct.Elements {
		require.Equal(t, ct.Elements[i].Text(), ct2.Elements[i].Text())
	}
}

func TestEmptyCiphertextMarshalsToEmptyString(t *testing.T) {
	ct := &dghv.Ciphertext{}
	text, err := ct.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "", string(text))

	var ct2 dghv.Ciphertext
	require.NoError(t, ct2.UnmarshalText(text))
	require.Equal(t, 0, ct2.Len())
}
