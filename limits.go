package decima

// Limits caps the memory a Session or Repacker will commit to one file.
type Limits struct {
	MaxContainerSize uint64 // container bytes after decompression
	MaxStreamRead    uint64 // bytes returned by one ReadStream call
}

func defaultLimits() Limits {
	return Limits{
		MaxContainerSize: 2 << 30,   // 2 GiB
		MaxStreamRead:    512 << 20, // 512 MiB
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxContainerSize == 0 {
		l.MaxContainerSize = d.MaxContainerSize
	}
	if l.MaxStreamRead == 0 {
		l.MaxStreamRead = d.MaxStreamRead
	}
	return l
}
