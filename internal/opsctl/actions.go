package opsctl

// Indirection layer to allow stubbing in tests

var (
	fnInstallUv   = installUv
	fnInstallNode = installNode
	fnInstallGo   = installGo

	fnEnvInit  = envInit
	fnEnvCheck = envCheck

	fnPreload = preloadServers

	fnServeStart = serveStart
	fnServeStop  = serveStop
	fnServeWait  = serveWait

	fnRunProbe = runProbe
)
