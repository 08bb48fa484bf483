// +build gofuzz

package rle

// Fuzz implements a randomized fuzz test of the rle
// receiver using go-fuzz.
//
// To run the fuzzer, first download go-fuzz:
// `go get github.com/dvyukov/go-fuzz/...`
//
// Then build the testing package:
// `go-fuzz-build github.com/pion/rle`
//
// And run the fuzzer on the corpus:
// ```
// go-fuzz -bin=rle-fuzz.zip -workdir=fuzzer
// ````
func Fuzz(data []byte) int {
	conf := Config{
		UseCompressedProtocolType: true,
		AllowALPDUSequenceNumber:  true,
		ImplicitProtocolType:      CompressedIPv4,
	}
	rcvr, err := NewReceiver(conf)
	if err != nil {
		return 0
	}
	if _, err := rcvr.Decapsulate(data); err != nil {
		return 0
	}

	return 1
}
