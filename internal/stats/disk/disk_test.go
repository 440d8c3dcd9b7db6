package disk_test

import (
	"testing"

	"github.com/alexei38/disk-cpu-load/internal/runner/fake"
	"github.com/alexei38/disk-cpu-load/internal/stats/disk"
	"github.com/stretchr/testify/require"
)

func TestFlush(t *testing.T) {
	r := fake.New()
	require.NoError(t, disk.Flush(r, "/dev/sdb"))
	require.Equal(t, []string{"blockdev --flushbufs /dev/sdb"}, r.Calls)
}

func TestRead(t *testing.T) {
	r := fake.New()
	require.NoError(t, disk.Read(r, "/dev/nvme0n1", 4096))
	require.Equal(t, []string{"dd if=/dev/nvme0n1 of=/dev/null bs=1048576 count=4096"}, r.Calls)
}

func TestExternalCommandFailure(t *testing.T) {
	r := fake.New()
	r.Fail["blockdev"] = 1
	r.Stderr["blockdev"] = "blockdev: cannot open /dev/sdz: No such file or directory\n"
	err := disk.Flush(r, "/dev/sdz")
	require.ErrorIs(t, err, disk.ErrExternalCommand)
	require.Contains(t, err.Error(), "No such file or directory")
	require.Contains(t, err.Error(), "status 1")

	r.Fail["dd"] = 2
	err = disk.Read(r, "/dev/sdz", 1)
	require.ErrorIs(t, err, disk.ErrExternalCommand)
	require.Contains(t, err.Error(), "dd exited with status 2")
}
