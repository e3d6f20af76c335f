package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical scanning
	LexInfo             Code = 1000
	LexIllegalToken     Code = 1001
	LexMalformedLiteral Code = 1002

	// Index loading
	IdxInfo       Code = 2000
	IdxLoadFailed Code = 2001
	IdxStats      Code = 2002

	// I/O
	IOInfo            Code = 4000
	IOLoadFileError   Code = 4001
	IOWriteFileError  Code = 4002
	IOCacheReadError  Code = 4003
	IOCacheWriteError Code = 4004

	// Project manifest
	ProjInfo            Code = 5000
	ProjManifestInvalid Code = 5001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:         "Unknown error",
		LexInfo:             "Lexical information",
		LexIllegalToken:     "Illegal token",
		LexMalformedLiteral: "Malformed literal",
		IdxInfo:             "Index information",
		IdxLoadFailed:       "Failed to load analysis index",
		IdxStats:            "Analysis index statistics",
		IOInfo:              "I/O information",
		IOLoadFileError:     "I/O load file error",
		IOWriteFileError:    "I/O write file error",
		IOCacheReadError:    "Render cache read error",
		IOCacheWriteError:   "Render cache write error",
		ProjInfo:            "Project information",
		ProjManifestInvalid: "Invalid project manifest",
		ObsInfo:             "Observability information",
		ObsTimings:          "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("IDX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
