package krawczyk_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fractis/fractis/internal/krawczyk"
)

func TestShareReconstructRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		secretLen int
		n, k      int
	}{
		{"Small", 5, 5, 3},
		{"ChunkAligned", 30, 5, 3},
		{"SingleByte", 1, 3, 2},
		{"Large", 8192, 10, 4},
		{"ThresholdSameAsN", 64, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret := make([]byte, tt.secretLen)
			_, err := rand.Read(secret)
			require.NoError(t, err)

			sharer, err := krawczyk.New(tt.n, tt.k, rand.Reader)
			require.NoError(t, err)

			shares, err := sharer.Share(secret)
			require.NoError(t, err)
			require.Len(t, shares, tt.n)

			for _, sh := range shares {
				assert.NotZero(t, sh.X)
				assert.Len(t, sh.Key, krawczyk.KeyMaterialSize)
				assert.Equal(t, tt.secretLen, sh.Length)
				// Body carries ceil(len/k) bytes, the space saving over Shamir.
				assert.Len(t, sh.Body, (tt.secretLen+tt.k-1)/tt.k)
			}

			recovered, err := sharer.Reconstruct(shares[:tt.k])
			require.NoError(t, err)
			assert.Equal(t, secret, recovered)

			recovered2, err := sharer.Reconstruct(shares[tt.n-tt.k:])
			require.NoError(t, err)
			assert.Equal(t, secret, recovered2)
		})
	}
}

func TestShareEmptySecret(t *testing.T) {
	sharer, err := krawczyk.New(5, 3, rand.Reader)
	require.NoError(t, err)

	_, err = sharer.Share(nil)
	assert.ErrorIs(t, err, krawczyk.ErrEmptySecret)
}

func TestNewInvalidParameters(t *testing.T) {
	_, err := krawczyk.New(3, 5, rand.Reader)
	assert.Error(t, err)

	_, err = krawczyk.New(5, 0, rand.Reader)
	assert.Error(t, err)

	_, err = krawczyk.New(5, 3, nil)
	assert.ErrorIs(t, err, krawczyk.ErrNilRandomSource)
}

func TestReconstructInsufficientShares(t *testing.T) {
	sharer, err := krawczyk.New(5, 3, rand.Reader)
	require.NoError(t, err)

	shares, err := sharer.Share([]byte("hybrid scheme secret"))
	require.NoError(t, err)

	_, err = sharer.Reconstruct(shares[:2])
	assert.ErrorIs(t, err, krawczyk.ErrInsufficientShares)
}

func TestReconstructInvalidKeyShare(t *testing.T) {
	sharer, err := krawczyk.New(5, 3, rand.Reader)
	require.NoError(t, err)

	shares, err := sharer.Share([]byte("hybrid scheme secret"))
	require.NoError(t, err)

	shares[1].Key = shares[1].Key[:10]
	_, err = sharer.Reconstruct(shares[:3])
	assert.ErrorIs(t, err, krawczyk.ErrInvalidKeyShare)
}

func TestCiphertextDiffersAcrossCalls(t *testing.T) {
	// Fresh key material per call: the same secret must produce different
	// share bodies on every Share invocation.
	secret := []byte("the same secret twice")

	sharer, err := krawczyk.New(5, 3, rand.Reader)
	require.NoError(t, err)

	first, err := sharer.Share(secret)
	require.NoError(t, err)
	second, err := sharer.Share(secret)
	require.NoError(t, err)

	assert.NotEqual(t, first[0].Body, second[0].Body)
	assert.NotEqual(t, first[0].Key, second[0].Key)
}
