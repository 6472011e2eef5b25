// The ryval command verifies ready/valid devices against their reference
// models from the command line.
package main

func main() {
	Execute()
}
