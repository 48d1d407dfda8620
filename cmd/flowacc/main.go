// flowacc builds a flow-routing graph from a grid definition and a
// hydrologically corrected DEM, accumulates drainage area, labels basins
// and writes the results to binary grids. Optionally sweeps multi-flow
// partition exponents over the same surface.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/im7mortal/UTM"
	"github.com/maseology/flowgraph"
	fgrid "github.com/maseology/flowgraph/grid"
	"github.com/maseology/goHydro/grid"
	"github.com/maseology/goHydro/tem"
	"github.com/maseology/mmaths"
	"github.com/maseology/mmio"
	"github.com/maseology/montecarlo/smpln"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
)

func main() {
	gdefFP := flag.String("gd", "", "grid definition file (.gdef)")
	demFP := flag.String("dem", "", "hydrologically corrected DEM (.uhdem)")
	outprfx := flag.String("o", "flowacc.", "output file prefix")
	sweep := flag.Int("sweep", 0, "number of multi-flow partition exponents to sample")
	zone := flag.Int("zone", 17, "UTM zone for outlet reporting")
	flag.Parse()
	if *gdefFP == "" || *demFP == "" {
		log.Fatalf(" flowacc requires -gd and -dem")
	}

	tt := mmio.NewTimer()

	println(" > step 1: load grid definition with active cells defined")
	gd, err := grid.ReadGDEF(*gdefFP, true)
	if err != nil {
		log.Fatalf("%v", err)
	}
	prv, err := fgrid.FromGDEF(gd)
	if err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Printf(" > step 2: load topological DEM\n   loading: %s\n", *demFP)
	var dem tem.TEM
	if err := dem.New(*demFP); err != nil {
		log.Fatalf(" flowacc tem.New() error: %v", err)
	}
	z := make([]float64, gd.Ncells())
	for _, c := range gd.Sactives {
		if t, ok := dem.TEC[c]; ok {
			z[c] = t.Z
		} else {
			log.Fatalf(" flowacc error: cell id %d not found in %s", c, *demFP)
		}
	}

	println(" > step 3: route, accumulate, label basins")
	fg, err := flowgraph.New(prv,
		flowgraph.TEMRouter{TEM: &dem},
		flowgraph.Snapshot{Tag: "routed", SaveGraph: true},
	)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if _, err := fg.UpdateRoutes(z); err != nil {
		log.Fatalf("%v", err)
	}
	uca, err := fg.DrainageArea()
	if err != nil {
		log.Fatalf("%v", err)
	}
	bsn, err := fg.Basins()
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := flowgraph.WriteFloats(*outprfx+"uca.bil", uca); err != nil {
		log.Fatalf("%v", err)
	}
	b32 := make([]int32, len(bsn))
	for i, v := range bsn {
		b32[i] = int32(v)
	}
	if err := flowgraph.WriteInts(*outprfx+"basin.bil", b32); err != nil {
		log.Fatalf("%v", err)
	}
	fg.Impl().Checkandprint(*outprfx)

	func() { // report outlets
		outs, _ := fg.Outlets()
		ids, szs, _ := fg.BasinSizes()
		fmt.Printf("\n %s basins draining %s cells\n", mmio.Thousands(int64(len(ids))), mmio.Thousands(int64(sum(szs))))
		n := len(outs)
		if n > 10 {
			n = 10
		}
		for _, c := range outs[:n] {
			xy := gd.Coord[c]
			lat, lng, err := UTM.ToLatLon(xy.X, xy.Y, *zone, "", true)
			if err != nil {
				fmt.Printf("   outlet cell %d: uca %.1f km²\n", c, uca[c]/1e6)
				continue
			}
			fmt.Printf("   outlet cell %d: (%.6f, %.6f) uca %.1f km²\n", c, lat, lng, uca[c]/1e6)
		}
	}()

	if *sweep > 0 {
		fmt.Printf(" > step 4: sweeping %d multi-flow partition exponents\n", *sweep)
		rng := rand.New(mrg63k3a.New())
		rng.Seed(time.Now().UnixNano())
		sp := smpln.NewLHC(rng, *sweep, 1, false)

		uiprogress.Start()
		bar := uiprogress.AddBar(*sweep).AppendCompleted().PrependElapsed()
		for k := 0; k < *sweep; k++ {
			exp := mmaths.LinearTransform(.5, 2., sp.U[0][k])
			mfg, err := flowgraph.New(prv,
				flowgraph.FillSinkResolver{},
				flowgraph.MultiFlowRouter{Exp: exp},
			)
			if err != nil {
				log.Fatalf("%v", err)
			}
			if _, err := mfg.UpdateRoutes(z); err != nil {
				log.Fatalf("%v", err)
			}
			acc, err := mfg.AccumulateUniform(1.)
			if err != nil {
				log.Fatalf("%v", err)
			}
			if err := flowgraph.WriteFloats(fmt.Sprintf("%smfd.%02d.p%.3f.bil", *outprfx, k, exp), acc); err != nil {
				log.Fatalf("%v", err)
			}
			bar.Incr()
		}
		uiprogress.Stop()
	}

	tt.Print("flowacc complete")
}

func sum(a []int) (s int) {
	for _, v := range a {
		s += v
	}
	return
}
