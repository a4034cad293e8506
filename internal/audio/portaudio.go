package audio

import (
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/scopeworks/wavescope/internal/util"
)

var (
	paMu    sync.Mutex
	paUsers int
)

// initPortAudio initializes the PortAudio library on first use. Calls are
// reference-counted so the device and the device lister can coexist.
func initPortAudio() error {
	paMu.Lock()
	defer paMu.Unlock()

	if paUsers == 0 {
		if err := portaudio.Initialize(); err != nil {
			return util.WrapError("initialize portaudio", err)
		}
	}
	paUsers++
	return nil
}

// terminatePortAudio releases the library once the last user is done.
func terminatePortAudio() {
	paMu.Lock()
	defer paMu.Unlock()

	paUsers--
	if paUsers <= 0 {
		_ = portaudio.Terminate()
		paUsers = 0
	}
}
