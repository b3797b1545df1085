/*
Package mazeres is a library for decoding and cataloguing the RLE bitmap
resources extracted from the legacy 3D maze screensaver.
*/
package mazeres

import "log"

type MazeRes struct {
	db     *ResourceDB
	logger *log.Logger
}

func New(db *ResourceDB, logger *log.Logger) *MazeRes {
	return &MazeRes{
		db:     db,
		logger: logger,
	}
}
