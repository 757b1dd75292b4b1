// Package main provides the nutriguide command line tool
package main

func main() {
	Execute()
}
