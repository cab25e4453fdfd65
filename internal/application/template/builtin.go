package template

import "github.com/taskverse/taskverse/internal/domain"

// Built-in starter templates shown to every user. IDs are stable so clients
// can apply them without a storage round-trip. Content matches the seed data
// the product has always shipped with.
var builtinTemplates = []domain.Template{
	{
		ID:          "default-0",
		Title:       "Peluncuran Blog Baru",
		Description: "Templat lengkap untuk meluncurkan blog atau situs web konten baru dari awal.",
		Category:    "konten",
		AuthorName:  "TaskVerse",
		Published:   true,
		Tasks: []domain.TemplateTask{
			{
				Title:       "Penelitian & Perencanaan Konten",
				Description: "Identifikasi audiens target dan topik-topik pilar untuk 6 bulan pertama.",
				Priority:    domain.TaskPriorityHigh,
				Tags:        []string{"konten", "strategi"},
				DueInDays:   7,
			},
			{
				Title:       "Desain & Pengembangan Situs Web",
				Description: "Gunakan kerangka kerja yang ringan, fokus pada pengalaman seluler dan kecepatan memuat.",
				Priority:    domain.TaskPriorityHigh,
				Tags:        []string{"desain", "webdev"},
				DueInDays:   30,
			},
			{
				Title:       "Tulis 5 Posting Blog Pertama",
				Description: "Buat konten awal untuk mengisi situs sebelum peluncuran.",
				Priority:    domain.TaskPriorityMedium,
				Tags:        []string{"penulisan", "konten"},
				DueInDays:   21,
			},
			{
				Title:       "Siapkan Analitik & SEO",
				Description: "Integrasikan Google Analytics, Search Console, dan plugin SEO dasar.",
				Priority:    domain.TaskPriorityMedium,
				Tags:        []string{"seo", "analitik"},
				DueInDays:   28,
			},
			{
				Title:       "Promosikan Peluncuran di Media Sosial",
				Description: "Buat kampanye singkat untuk mengumumkan peluncuran blog.",
				Priority:    domain.TaskPriorityLow,
				Tags:        []string{"pemasaran", "sosmed"},
				DueInDays:   35,
			},
		},
	},
	{
		ID:          "default-1",
		Title:       "Rencana Pindahan Rumah",
		Description: "Kelola semua tugas yang terkait dengan pindah ke tempat baru.",
		Category:    "logistik",
		AuthorName:  "TaskVerse",
		Published:   true,
		Tasks: []domain.TemplateTask{
			{
				Title:       "Cari & Sewa Perusahaan Pindahan",
				Description: "Dapatkan penawaran dari setidaknya 3 perusahaan pindahan terkemuka.",
				Priority:    domain.TaskPriorityHigh,
				Tags:        []string{"logistik", "riset"},
				DueInDays:   14,
			},
			{
				Title:       "Declutter & Donasi Barang",
				Description: "Sortir barang-barang dan donasikan atau buang yang tidak lagi diperlukan.",
				Priority:    domain.TaskPriorityMedium,
				Tags:        []string{"organisasi"},
				DueInDays:   21,
			},
			{
				Title:       "Perbarui Alamat & Transfer Layanan",
				Description: "Perbarui alamat Anda untuk pos, bank, dan transfer layanan (listrik, internet).",
				Priority:    domain.TaskPriorityHigh,
				Tags:        []string{"administrasi", "layanan"},
				DueInDays:   25,
			},
			{
				Title:       "Mulai Mengepak Barang Non-Esensial",
				Description: "Pak barang-barang seperti buku, dekorasi, dan pakaian di luar musim.",
				Priority:    domain.TaskPriorityMedium,
				Tags:        []string{"pengepakan"},
				DueInDays:   30,
			},
			{
				Title:       "Siapkan \"Kotak Hari Pertama\"",
				Description: "Pak kotak berisi barang-barang penting untuk 24 jam pertama di rumah baru Anda.",
				Priority:    domain.TaskPriorityHigh,
				Tags:        []string{"pengepakan", "penting"},
				DueInDays:   34,
			},
		},
	},
	{
		ID:          "default-2",
		Title:       "Peluncuran Produk SaaS",
		Description: "Daftar periksa penting untuk peluncuran produk SaaS Anda.",
		Category:    "pemasaran",
		AuthorName:  "TaskVerse",
		Published:   true,
		Tasks: []domain.TemplateTask{
			{
				Title:       "Finalisasi Halaman Harga",
				Description: "Pastikan semua tingkatan harga dan fitur sudah jelas.",
				Priority:    domain.TaskPriorityHigh,
				Tags:        []string{"pemasaran", "produk"},
				DueInDays:   10,
			},
			{
				Title:       "Siapkan Gerbang Pembayaran",
				Description: "Integrasikan Stripe atau gateway pembayaran lainnya dan uji alur pembayaran.",
				Priority:    domain.TaskPriorityHigh,
				Tags:        []string{"teknis", "pembayaran"},
				DueInDays:   15,
			},
			{
				Title:       "Lakukan Pengujian Beta Tertutup",
				Description: "Undang sekelompok kecil pengguna untuk menguji produk dan mengumpulkan umpan balik.",
				Priority:    domain.TaskPriorityMedium,
				Tags:        []string{"qa", "umpan balik"},
				DueInDays:   20,
			},
			{
				Title:       "Siapkan Papan Instrumen Analitik",
				Description: "Lacak pendaftaran, aktivasi, dan metrik retensi pengguna.",
				Priority:    domain.TaskPriorityMedium,
				Tags:        []string{"data", "analitik"},
				DueInDays:   25,
			},
			{
				Title:       "Jadwalkan Peluncuran di Product Hunt",
				Description: "Siapkan aset dan rencanakan promosi untuk peluncuran Product Hunt.",
				Priority:    domain.TaskPriorityHigh,
				Tags:        []string{"pemasaran", "peluncuran"},
				DueInDays:   40,
			},
		},
	},
}
