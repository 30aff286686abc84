package domain

import "errors"

var ErrFileNotFound = errors.New("file not found")
var ErrUnsupportedFileType = errors.New("unsupported file type")
