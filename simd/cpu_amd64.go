//go:build amd64

package simd

import "golang.org/x/sys/cpu"

// detectFeatures probes the x86-64 feature set and ranks the widest usable
// copy kernel. SSE2 needs no probe; it is part of the base amd64 ISA.
func detectFeatures() (Features, int) {
	f := Features{
		HasSSE2:   true,
		HasSSE41:  cpu.X86.HasSSE41,
		HasAVX2:   cpu.X86.HasAVX2,
		HasAVX512: cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW,
	}

	switch {
	case f.HasAVX512:
		return f, ImplAVX512
	case f.HasAVX2:
		return f, ImplAVX2
	case f.HasSSE41:
		return f, ImplSSE41
	}
	return f, ImplGeneric
}
