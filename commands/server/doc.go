/*
Package server provides the daemon commands shared by dex applications:
writing the app_state into a tendermint genesis file, validating a genesis
file and running the ABCI socket server.
*/
package server
