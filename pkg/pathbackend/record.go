package pathbackend

import "strings"

// pathRecord is one explicitly added device node. Records live from
// AddDevice until RemoveDevice: a suspended device keeps its record, which
// is what lets Resume bring it back.
type pathRecord struct {
	devnode string
	sysname string
}

// sysnameOf returns the node name after the final path separator, or the
// empty string when devnode contains none.
func sysnameOf(devnode string) string {
	i := strings.LastIndexByte(devnode, '/')
	if i < 0 {
		return ""
	}
	return devnode[i+1:]
}

func (b *Backend) addPath(devnode string) *pathRecord {
	rec := &pathRecord{
		devnode: devnode,
		sysname: sysnameOf(devnode),
	}
	b.paths = append(b.paths, rec)
	return rec
}

// removePath forgets the record for devnode. Unknown paths are ignored, so
// removal stays idempotent.
func (b *Backend) removePath(devnode string) {
	for i, rec := range b.paths {
		if rec.devnode == devnode {
			b.paths = append(b.paths[:i], b.paths[i+1:]...)
			return
		}
	}
}
