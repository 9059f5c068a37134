package confuse

import "testing"

func benchApply(b *testing.B, w, h int, opts Options) {
	pix := makePix(w, h)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Apply(pix, w, h, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncrypt_512(b *testing.B) {
	benchApply(b, 512, 512, Options{Mode: Encrypt, Strength: 1, BlockSize: 4})
}

func BenchmarkEncrypt_1920x1080(b *testing.B) {
	benchApply(b, 1920, 1080, Options{Mode: Encrypt, Strength: 1, BlockSize: 4})
}

func BenchmarkEncrypt_1920x1080_Serial(b *testing.B) {
	benchApply(b, 1920, 1080, Options{Mode: Encrypt, Strength: 1, BlockSize: 4, Workers: 1})
}

func BenchmarkDecrypt_1920x1080(b *testing.B) {
	benchApply(b, 1920, 1080, Options{Mode: Decrypt, Strength: 1, BlockSize: 4})
}

func BenchmarkBlockSmooth_1920x1080(b *testing.B) {
	benchApply(b, 1920, 1080, Options{Mode: BlockSmooth, Strength: 1, BlockSize: 16})
}
