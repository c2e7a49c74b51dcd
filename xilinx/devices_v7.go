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

package xilinx

// Zynq-7000 (XC7Z0xx) block RAM tile coordinates and bitstream offsets
// below were reverse engineered by synthesizing a design that instances
// every block RAM and inspecting the logic location information bitgen
// produces for it; they are carried over verbatim.

// series7Padding is UG470's 101-word (404-byte) configuration frame size.
// Series-7's FDRO readback pipeline adds no extra latency beyond this one
// frame, so FrontPipelineWords is left at zero.
var series7Padding = ReadbackPadding{FrameSizeWords: 101}

func init() {
	RegisterDevice(NewDevice("xc7z010", 0x03722093, xc7z010RAMB36, true, series7Padding))
	RegisterDevice(NewDevice("xc7z015", 0x0373B093, xc7z015RAMB36, true, series7Padding))
	RegisterDevice(NewDevice("xc7z020", 0x03727093, xc7z020RAMB36, true, series7Padding))
}

func ramb36e1Slice(entries [][3]uint64) []BRAM {
	out := make([]BRAM, len(entries))
	for i, e := range entries {
		out[i] = NewRAMB36E1(uint(e[0]), uint(e[1]), e[2], 0)
	}
	return out
}

var xc7z010RAMB36 = ramb36e1Slice([][3]uint64{
	{0, 0, 0x00EB0AC0}, {0, 1, 0x00EB0C00}, {0, 2, 0x00EB0D40}, {0, 3, 0x00EB0E80},
	{0, 4, 0x00EB0FC0}, {0, 5, 0x00EB1120}, {0, 6, 0x00EB1260}, {0, 7, 0x00EB13A0},
	{0, 8, 0x00EB14E0}, {0, 9, 0x00EB1620}, {0, 10, 0x00CB6180}, {0, 11, 0x00CB62C0},
	{0, 12, 0x00CB6400}, {0, 13, 0x00CB6540}, {0, 14, 0x00CB6680}, {0, 15, 0x00CB67E0},
	{0, 16, 0x00CB6920}, {0, 17, 0x00CB6A60}, {0, 18, 0x00CB6BA0}, {0, 19, 0x00CB6CE0},
	{1, 0, 0x00F15AC0}, {1, 1, 0x00F15C00}, {1, 2, 0x00F15D40}, {1, 3, 0x00F15E80},
	{1, 4, 0x00F15FC0}, {1, 5, 0x00F16120}, {1, 6, 0x00F16260}, {1, 7, 0x00F163A0},
	{1, 8, 0x00F164E0}, {1, 9, 0x00F16620}, {1, 10, 0x00D1B180}, {1, 11, 0x00D1B2C0},
	{1, 12, 0x00D1B400}, {1, 13, 0x00D1B540}, {1, 14, 0x00D1B680}, {1, 15, 0x00D1B7E0},
	{1, 16, 0x00D1B920}, {1, 17, 0x00D1BA60}, {1, 18, 0x00D1BBA0}, {1, 19, 0x00D1BCE0},
	{2, 0, 0x00F7AAC0}, {2, 1, 0x00F7AC00}, {2, 2, 0x00F7AD40}, {2, 3, 0x00F7AE80},
	{2, 4, 0x00F7AFC0}, {2, 5, 0x00F7B120}, {2, 6, 0x00F7B260}, {2, 7, 0x00F7B3A0},
	{2, 8, 0x00F7B4E0}, {2, 9, 0x00F7B620}, {2, 10, 0x00D80180}, {2, 11, 0x00D802C0},
	{2, 12, 0x00D80400}, {2, 13, 0x00D80540}, {2, 14, 0x00D80680}, {2, 15, 0x00D807E0},
	{2, 16, 0x00D80920}, {2, 17, 0x00D80A60}, {2, 18, 0x00D80BA0}, {2, 19, 0x00D80CE0},
})

var xc7z015RAMB36 = ramb36e1Slice([][3]uint64{
	{0, 0, 0x0192EA40}, {0, 1, 0x0192EB80}, {0, 2, 0x0192ECC0}, {0, 3, 0x0192EE00},
	{0, 4, 0x0192EF40}, {0, 5, 0x0192F0A0}, {0, 6, 0x0192F1E0}, {0, 7, 0x0192F320},
	{0, 8, 0x0192F460}, {0, 9, 0x0192F5A0}, {1, 0, 0x01993A40}, {1, 1, 0x01993B80},
	{1, 2, 0x01993CC0}, {1, 3, 0x01993E00}, {1, 4, 0x01993F40}, {1, 5, 0x019940A0},
	{1, 6, 0x019941E0}, {1, 7, 0x01994320}, {1, 8, 0x01994460}, {1, 9, 0x019945A0},
	{2, 0, 0x019F8A40}, {2, 1, 0x019F8B80}, {2, 2, 0x019F8CC0}, {2, 3, 0x019F8E00},
	{2, 4, 0x019F8F40}, {2, 5, 0x019F90A0}, {2, 6, 0x019F91E0}, {2, 7, 0x019F9320},
	{2, 8, 0x019F9460}, {2, 9, 0x019F95A0}, {2, 10, 0x017FE100}, {2, 11, 0x017FE240},
	{2, 12, 0x017FE380}, {2, 13, 0x017FE4C0}, {2, 14, 0x017FE600}, {2, 15, 0x017FE760},
	{2, 16, 0x017FE8A0}, {2, 17, 0x017FE9E0}, {2, 18, 0x017FEB20}, {2, 19, 0x017FEC60},
	{2, 20, 0x016037C0}, {2, 21, 0x01603900}, {2, 22, 0x01603A40}, {2, 23, 0x01603B80},
	{2, 24, 0x01603CC0}, {2, 25, 0x01603E20}, {2, 26, 0x01603F60}, {2, 27, 0x016040A0},
	{2, 28, 0x016041E0}, {2, 29, 0x01604320}, {3, 5, 0x01A5E0A0}, {3, 6, 0x01A5E1E0},
	{3, 7, 0x01A5E320}, {3, 8, 0x01A5E460}, {3, 9, 0x01A5E5A0}, {3, 10, 0x01863100},
	{3, 11, 0x01863240}, {3, 12, 0x01863380}, {3, 13, 0x018634C0}, {3, 14, 0x01863600},
	{3, 15, 0x01863760}, {3, 16, 0x018638A0}, {3, 17, 0x018639E0}, {3, 18, 0x01863B20},
	{3, 19, 0x01863C60}, {3, 20, 0x016687C0}, {3, 21, 0x01668900}, {3, 22, 0x01668A40},
	{3, 23, 0x01668B80}, {3, 24, 0x01668CC0}, {3, 25, 0x01668E20}, {3, 26, 0x01668F60},
	{3, 27, 0x016690A0}, {3, 28, 0x016691E0}, {3, 29, 0x01669320}, {4, 10, 0x018C8100},
	{4, 11, 0x018C8240}, {4, 12, 0x018C8380}, {4, 13, 0x018C84C0}, {4, 14, 0x018C8600},
	{4, 15, 0x018C8760}, {4, 16, 0x018C88A0}, {4, 17, 0x018C89E0}, {4, 18, 0x018C8B20},
	{4, 19, 0x018C8C60}, {4, 20, 0x016CD7C0}, {4, 21, 0x016CD900}, {4, 22, 0x016CDA40},
	{4, 23, 0x016CDB80}, {4, 24, 0x016CDCC0}, {4, 25, 0x016CDE20}, {4, 26, 0x016CDF60},
	{4, 27, 0x016CE0A0}, {4, 28, 0x016CE1E0}, {4, 29, 0x016CE320},
})

var xc7z020RAMB36 = ramb36e1Slice([][3]uint64{
	{0, 0, 0x01C795C0}, {0, 1, 0x01C79700}, {0, 2, 0x01C79840}, {0, 3, 0x01C79980},
	{0, 4, 0x01C79AC0}, {0, 5, 0x01C79C20}, {0, 6, 0x01C79D60}, {4, 0, 0x01E0D5C0},
	{0, 7, 0x01C79EA0}, {4, 1, 0x01E0D700}, {0, 8, 0x01C79FE0}, {4, 2, 0x01E0D840},
	{0, 9, 0x01C7A120}, {4, 3, 0x01E0D980}, {4, 4, 0x01E0DAC0}, {4, 5, 0x01E0DC20},
	{4, 6, 0x01E0DD60}, {4, 7, 0x01E0DEA0}, {4, 8, 0x01E0DFE0}, {1, 0, 0x01CDE5C0},
	{4, 9, 0x01E0E120}, {1, 1, 0x01CDE700}, {4, 10, 0x01BADC80}, {1, 2, 0x01CDE840},
	{4, 11, 0x01BADDC0}, {1, 3, 0x01CDE980}, {4, 12, 0x01BADF00}, {1, 4, 0x01CDEAC0},
	{4, 13, 0x01BAE040}, {1, 5, 0x01CDEC20}, {4, 14, 0x01BAE180}, {1, 6, 0x01CDED60},
	{4, 15, 0x01BAE2E0}, {1, 7, 0x01CDEEA0}, {4, 16, 0x01BAE420}, {1, 8, 0x01CDEFE0},
	{4, 17, 0x01BAE560}, {1, 9, 0x01CDF120}, {4, 18, 0x01BAE6A0}, {4, 19, 0x01BAE7E0},
	{4, 20, 0x0194E340}, {2, 0, 0x01D435C0}, {4, 21, 0x0194E480}, {2, 1, 0x01D43700},
	{4, 22, 0x0194E5C0}, {2, 2, 0x01D43840}, {4, 23, 0x0194E700}, {2, 3, 0x01D43980},
	{4, 24, 0x0194E840}, {2, 4, 0x01D43AC0}, {4, 25, 0x0194E9A0}, {2, 5, 0x01D43C20},
	{4, 26, 0x0194EAE0}, {2, 6, 0x01D43D60}, {4, 27, 0x0194EC20}, {2, 7, 0x01D43EA0},
	{4, 28, 0x0194ED60}, {2, 8, 0x01D43FE0}, {4, 29, 0x0194EEA0}, {2, 9, 0x01D44120},
	{2, 10, 0x01AE3C80}, {2, 11, 0x01AE3DC0}, {2, 12, 0x01AE3F00}, {2, 13, 0x01AE4040},
	{2, 14, 0x01AE4180}, {2, 15, 0x01AE42E0}, {5, 0, 0x01E725C0}, {2, 16, 0x01AE4420},
	{5, 1, 0x01E72700}, {2, 17, 0x01AE4560}, {5, 2, 0x01E72840}, {2, 18, 0x01AE46A0},
	{5, 3, 0x01E72980}, {2, 19, 0x01AE47E0}, {5, 4, 0x01E72AC0}, {5, 5, 0x01E72C20},
	{2, 20, 0x01884340}, {5, 6, 0x01E72D60}, {2, 21, 0x01884480}, {5, 7, 0x01E72EA0},
	{2, 22, 0x018845C0}, {5, 8, 0x01E72FE0}, {2, 23, 0x01884700}, {5, 9, 0x01E73120},
	{2, 24, 0x01884840}, {5, 10, 0x01C12C80}, {2, 25, 0x018849A0}, {5, 11, 0x01C12DC0},
	{2, 26, 0x01884AE0}, {5, 12, 0x01C12F00}, {2, 27, 0x01884C20}, {5, 13, 0x01C13040},
	{2, 28, 0x01884D60}, {5, 14, 0x01C13180}, {2, 29, 0x01884EA0}, {5, 15, 0x01C132E0},
	{5, 16, 0x01C13420}, {5, 17, 0x01C13560}, {5, 18, 0x01C136A0}, {5, 19, 0x01C137E0},
	{3, 0, 0x01DA85C0}, {5, 20, 0x019B3340}, {3, 1, 0x01DA8700}, {5, 21, 0x019B3480},
	{3, 2, 0x01DA8840}, {5, 22, 0x019B35C0}, {3, 3, 0x01DA8980}, {5, 23, 0x019B3700},
	{3, 4, 0x01DA8AC0}, {5, 24, 0x019B3840}, {3, 5, 0x01DA8C20}, {5, 25, 0x019B39A0},
	{3, 6, 0x01DA8D60}, {5, 26, 0x019B3AE0}, {3, 7, 0x01DA8EA0}, {5, 27, 0x019B3C20},
	{3, 8, 0x01DA8FE0}, {5, 28, 0x019B3D60}, {3, 9, 0x01DA9120}, {5, 29, 0x019B3EA0},
	{3, 10, 0x01B48C80}, {3, 11, 0x01B48DC0}, {3, 12, 0x01B48F00}, {3, 13, 0x01B49040},
	{3, 14, 0x01B49180}, {3, 15, 0x01B492E0}, {3, 16, 0x01B49420}, {3, 17, 0x01B49560},
	{3, 18, 0x01B496A0}, {3, 19, 0x01B497E0}, {3, 20, 0x018E9340}, {3, 21, 0x018E9480},
	{3, 22, 0x018E95C0}, {3, 23, 0x018E9700}, {3, 24, 0x018E9840}, {3, 25, 0x018E99A0},
	{3, 26, 0x018E9AE0}, {3, 27, 0x018E9C20}, {3, 28, 0x018E9D60}, {3, 29, 0x018E9EA0},
})
