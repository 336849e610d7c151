package tether

import (
	"sync"

	"github.com/ebitengine/purego"
)

var (
	threadOnce sync.Once

	// int pthread_threadid_np(pthread_t thread, uint64_t *thread_id)
	pthreadThreadIDNP func(thread uintptr, id *uint64) int32
)

func threadID() uint64 {
	threadOnce.Do(func() {
		lib, err := purego.Dlopen("/usr/lib/libSystem.B.dylib", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			panic(err)
		}
		purego.RegisterLibFunc(&pthreadThreadIDNP, lib, "pthread_threadid_np")
	})

	// A zero pthread_t means the calling thread.
	var id uint64
	pthreadThreadIDNP(0, &id)
	return id
}
