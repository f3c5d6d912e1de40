// Command ls-cosmos is a terminal tour of the solar system driven by a
// fixed sequence of navigation stops.
package main

func main() {
	Execute()
}
