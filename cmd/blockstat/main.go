// Command blockstat packs text matrices into planar frames, unpacks them and
// reports how well each codec compresses a block in dense and split layout.
package main

func main() {
	execute()
}
