// Copyright © 2019 Erin Shepherd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"

	"github.com/erincandescent/unbit/xilinx"
	"github.com/spf13/cobra"
)

var dumpBRAMsCmd = &cobra.Command{
	Use:   "dump-brams <readback.rbd>",
	Short: "Dump every block RAM tile's contents as INIT_xx/INITP_xx hex strings",
	Long: `Reads a readback capture and, for every RAMB36E1/RAMB18E1/RAMB36E2
tile known for the capture's IDCODE, prints its data and parity contents
as 256-bit hex lines in the same order Vivado's INIT_xx/INITP_xx
initialization strings use.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readFile(args[0])
		if err != nil {
			return err
		}

		bs, err := xilinx.LoadReadback(data)
		if err != nil {
			return err
		}

		for slrIdx, slr := range bs.SLRs() {
			device, err := bs.DeviceForSLR(slrIdx)
			if err != nil {
				return err
			}
			fd, err := bs.FrameData(slrIdx)
			if err != nil {
				return err
			}

			fmt.Printf("# SLR %d: device %s (idcode %#08x)\n", slrIdx, device.Name, slr.IDCode)
			for _, cat := range []xilinx.BRAMCategory{xilinx.CategoryRAMB36, xilinx.CategoryRAMB18} {
				for _, ram := range device.BRAMs(cat) {
					if err := dumpOneBRAM(fd, ram); err != nil {
						return err
					}
				}
			}
		}
		return nil
	},
}

func dumpOneBRAM(fd *xilinx.FrameData, ram xilinx.BRAM) error {
	data, err := xilinx.ExtractBits(ram, fd, false)
	if err != nil {
		return err
	}
	parity, err := xilinx.ExtractBits(ram, fd, true)
	if err != nil {
		return err
	}

	fmt.Printf("%s X%dY%d:\n", ram.Primitive(), ram.X(), ram.Y())
	printInitLines("INIT", data)
	printInitLines("INITP", parity)
	return nil
}

func printInitLines(prefix string, data []byte) {
	const bytesPerLine = 32 // 256 bits per INIT_xx line
	for i := 0; i*bytesPerLine < len(data); i++ {
		start := i * bytesPerLine
		end := start + bytesPerLine
		if end > len(data) {
			end = len(data)
		}
		fmt.Printf("%s_%02X = %X\n", prefix, i, reverseBytes(data[start:end]))
	}
}

func reverseBytes(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[len(in)-1-i] = b
	}
	return out
}

func init() {
	rootCmd.AddCommand(dumpBRAMsCmd)
}
