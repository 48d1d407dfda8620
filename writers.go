package flowgraph

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/maseology/mmio"
)

// WriteFloats writes f as a little-endian float32 binary grid (.bil).
func WriteFloats(fp string, f []float64) error {
	f32 := func() []float32 {
		o := make([]float32, len(f))
		for i, v := range f {
			o[i] = float32(v)
		}
		return o
	}()
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, f32); err != nil {
		return fmt.Errorf("writeFloats failed: %v", err)
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writeFloats failed: %v", err)
	}
	return nil
}

// WriteInts writes i as a little-endian int32 binary grid (.bil).
func WriteInts(fp string, i []int32) error {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, i); err != nil {
		return fmt.Errorf("writeInts failed: %v", err)
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writeInts failed: %v", err)
	}
	return nil
}

// Checkandprint dumps the graph state to binary grids for external checking.
func (g *Graph) Checkandprint(chkdirprfx string) {
	if dir := filepath.Dir(chkdirprfx); dir != "." {
		mmio.MakeDir(dir)
	}

	m := g.Mnbr
	rcv, nrc, ndn, bsn, opos := make([]int32, g.Nc), make([]int32, g.Nc), make([]int32, g.Nc), make([]int32, g.Nc), make([]int32, g.Nc)
	w0 := make([]float64, g.Nc)
	for i := 0; i < g.Nc; i++ {
		rcv[i], opos[i] = -9999, -9999
		if g.Nrec[i] > 0 {
			rcv[i] = int32(g.Recv[i*m])
			w0[i] = g.Wrec[i*m]
		}
		nrc[i] = int32(g.Nrec[i])
		ndn[i] = int32(g.Ndnr[i])
		bsn[i] = int32(g.Basin[i])
	}
	for k, i := range g.Ord {
		opos[i] = int32(k)
	}

	chk := func(err error) {
		if err != nil {
			log.Println(err)
		}
	}
	chk(WriteInts(chkdirprfx+"graph.recv.bil", rcv))  // first/steepest receiver
	chk(WriteInts(chkdirprfx+"graph.nrec.bil", nrc))  // receiver count
	chk(WriteInts(chkdirprfx+"graph.ndnr.bil", ndn))  // donor count
	chk(WriteInts(chkdirprfx+"graph.basin.bil", bsn)) // basin label
	chk(WriteInts(chkdirprfx+"graph.ord.bil", opos))  // position in topological order
	chk(WriteFloats(chkdirprfx+"graph.wrec.bil", w0)) // first receiver weight
}
