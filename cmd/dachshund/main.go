// Command dachshund drives the beam-search biclique miner and its
// companion batch analytics over streamed, tab-separated graph input.
package main

func main() {
	Execute()
}
