package domain

import (
	"fmt"
	"time"
)

// Operation is one planned rename of a source file into the destination directory.
type Operation struct {
	SourceName string
	TargetName string
	SourcePath string
	TargetPath string
	SourceTime time.Time
	TargetTime time.Time
}

// String renders the operation the way it is reported to the user.
func (o Operation) String() string {
	return fmt.Sprintf("%s --> %s", o.SourcePath, o.TargetPath)
}

type Plan struct {
	Operations []Operation
	Listed     int
	Skipped    int
}

func (p Plan) Empty() bool {
	return len(p.Operations) == 0
}
