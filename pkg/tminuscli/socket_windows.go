//go:build windows

package tminuscli

import "github.com/tminus/tminus/common"

func pipePath() string {
	return common.PipePath()
}

func getConnectionPath() string {
	if forceTCP() {
		return tcpAddress()
	}
	return pipePath()
}
